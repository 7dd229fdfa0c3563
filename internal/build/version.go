// Package build provides version and build information for changelog-reader.
// It has no dependencies on other internal packages so anything can import it.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/changelog-reader"

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Info is a labelled build property, in display order.
type Info struct {
	Label string
	Value string
}

// Details returns the build properties shown by the version command.
func Details() []Info {
	return []Info{
		{"Version", Version},
		{"Commit", ShortCommit(Commit)},
		{"Built", BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
}

// ShortCommit truncates a commit hash to 8 characters.
func ShortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
