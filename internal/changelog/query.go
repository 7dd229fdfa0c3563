package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
// An empty Version means the latest entry was requested from an empty changelog.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	if e.Version == "" {
		return "no version entry found"
	}
	if len(e.AvailableVersions) == 0 {
		return fmt.Sprintf("version %q not found", e.Version)
	}
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// Find returns the entry for version. An empty version selects the first
// entry in document order (by convention the newest). Matching is an exact,
// case-insensitive comparison of the version token; the first match wins.
// The boolean is false when nothing matches.
func (c *Changelog) Find(version string) (Entry, bool) {
	if c == nil || len(c.Entries) == 0 {
		return Entry{}, false
	}

	if version == "" {
		return c.Entries[0], true
	}

	for _, e := range c.Entries {
		if strings.EqualFold(e.Version, version) {
			return e, true
		}
	}

	return Entry{}, false
}

// GetVersion is like Find but returns a VersionNotFoundError on a miss.
func (c *Changelog) GetVersion(version string) (*Entry, error) {
	e, ok := c.Find(version)
	if !ok {
		return nil, &VersionNotFoundError{
			Version:           version,
			AvailableVersions: c.ListVersions(),
		}
	}
	return &e, nil
}

// Latest returns the first entry in document order.
func (c *Changelog) Latest() (Entry, bool) {
	return c.Find("")
}

// LatestRelease returns the first entry with released status.
func (c *Changelog) LatestRelease() (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.Entries {
		if e.Status == StatusReleased {
			return e, true
		}
	}
	return Entry{}, false
}

// Unreleased returns the unreleased entry, if any.
func (c *Changelog) Unreleased() (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.Entries {
		if e.IsUnreleased() {
			return e, true
		}
	}
	return Entry{}, false
}

// CountByStatus returns how many entries have each status.
func (c *Changelog) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	if c == nil {
		return counts
	}
	for _, e := range c.Entries {
		counts[e.Status]++
	}
	return counts
}
