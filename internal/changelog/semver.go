package changelog

import (
	"regexp"
	"strings"
)

// semverPattern is the SemVer 2.0.0 grammar: MAJOR.MINOR.PATCH with optional
// -prerelease and +build parts. Numeric identifiers in the core and in the
// prerelease must not have leading zeros; build identifiers may.
var semverPattern = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`,
)

// IsValidSemVer reports whether version is a valid semantic version.
// The "Unreleased" token is accepted in any case.
func IsValidSemVer(version string) bool {
	if strings.EqualFold(version, UnreleasedVersion) {
		return true
	}
	return semverPattern.MatchString(version)
}
