package changelog

import (
	"fmt"
	"strings"
)

// ValidationLevel controls how formatting problems are reported.
type ValidationLevel string

const (
	// LevelNone suppresses version and date findings.
	LevelNone ValidationLevel = "none"
	// LevelWarn reports version and date findings as warnings.
	LevelWarn ValidationLevel = "warn"
	// LevelError reports version and date findings as errors.
	LevelError ValidationLevel = "error"
)

// DefaultValidationDepth is the number of leading entries checked when no
// depth is configured.
const DefaultValidationDepth = 10

// ValidationOptions configures Validate.
type ValidationOptions struct {
	Level ValidationLevel
	// Depth limits validation to the first Depth entries. Values below 1
	// fall back to DefaultValidationDepth.
	Depth int
}

// ValidationResult collects the findings of a Validate call. Errors and
// Warnings are independent: an error-level run can still produce warnings.
type ValidationResult struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// ParseValidationLevel converts a string to a ValidationLevel.
func ParseValidationLevel(s string) (ValidationLevel, error) {
	switch ValidationLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelNone, "":
		return LevelNone, nil
	case LevelWarn:
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return "", fmt.Errorf("invalid validation level %q (expected: none, warn, error)", s)
	}
}

// Validate checks the most recent entries of c against the changelog
// formatting rules:
//   - the version must be valid semver (or "Unreleased")
//   - a date, when present, must be YYYY-MM-DD
//   - the entry should have changes (always a warning)
//
// Version and date findings go to Errors at LevelError, to Warnings at
// LevelWarn, and are dropped at LevelNone.
func Validate(c *Changelog, opts ValidationOptions) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	depth := opts.Depth
	if depth < 1 {
		depth = DefaultValidationDepth
	}

	entries := c.head(depth)
	for i := range entries {
		validateEntry(&entries[i], opts.Level, &result)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// validateEntry appends the findings for a single entry to result.
func validateEntry(e *Entry, level ValidationLevel, result *ValidationResult) {
	if !IsValidSemVer(e.Version) {
		result.report(level, fmt.Sprintf("Invalid version format: %s", e.Version))
	}

	if e.Date != "" && e.Date != UnreleasedVersion && !IsValidDate(e.Date) {
		result.report(level, fmt.Sprintf("Invalid date format for version %s: %s. Expected YYYY-MM-DD", e.Version, e.Date))
	}

	if e.IsEmpty() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Version %s has no changes", e.Version))
	}
}

// report routes a level-dependent finding.
func (r *ValidationResult) report(level ValidationLevel, message string) {
	switch level {
	case LevelError:
		r.Errors = append(r.Errors, message)
	case LevelWarn:
		r.Warnings = append(r.Warnings, message)
	}
}

// head returns at most n leading entries.
func (c *Changelog) head(n int) []Entry {
	if c == nil {
		return nil
	}
	if len(c.Entries) <= n {
		return c.Entries
	}
	return c.Entries[:n]
}
