package changelog

import "strings"

// Status is the release status of a changelog entry. It is derived from the
// heading while parsing, except for the explicit YANKED marker.
type Status string

const (
	StatusReleased    Status = "released"
	StatusUnreleased  Status = "unreleased"
	StatusPrereleased Status = "prereleased"
	StatusYanked      Status = "yanked"
)

// UnreleasedVersion is the conventional heading token for changes that have
// not been released yet. Comparisons against it are case-insensitive.
const UnreleasedVersion = "Unreleased"

// Entry is a single version record from a Keep a Changelog document.
// Version is the raw token found between the heading brackets and is not
// guaranteed to be valid semver. Date is empty when the heading carries none.
// Changes holds the verbatim markdown body, trimmed of surrounding blank lines.
type Entry struct {
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Status  Status `json:"status" yaml:"status"`
	Changes string `json:"changes" yaml:"changes"`
}

// Changelog is the ordered result of a parse. Entries keep document order,
// which by convention is newest first. A Changelog is built fresh by Parse
// and is not modified afterwards.
type Changelog struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// HasDate reports whether the entry heading carried a date.
func (e Entry) HasDate() bool {
	return e.Date != ""
}

// IsUnreleased returns true if this entry holds unreleased changes.
func (e Entry) IsUnreleased() bool {
	return strings.EqualFold(e.Version, UnreleasedVersion)
}

// IsEmpty returns true if the entry has no change text.
func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(e.Changes) == ""
}

// Len returns the number of entries.
func (c *Changelog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// ListVersions returns the version tokens of all entries in document order.
func (c *Changelog) ListVersions() []string {
	if c == nil {
		return nil
	}
	versions := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		versions[i] = e.Version
	}
	return versions
}
