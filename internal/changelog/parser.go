package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// headingPattern matches a version heading:
	//   ## [version](link) (date) - trailing
	// The link, the parenthesized candidate and the trailing text are optional.
	headingPattern = regexp.MustCompile(`^##\s+\[([^\]]+)\](?:\([^)]+\))?(?:\s*\(([^)]+)\))?(?:\s*-\s*(.*))?`)

	// yankedPattern matches "## [version] - YANKED" lines.
	yankedPattern = regexp.MustCompile(`(?i)^##\s+\[([^\]]+)\]\s*-\s*YANKED\b`)

	// yankedTagPattern matches the "[YANKED]" suffix used by keepachangelog.com.
	yankedTagPattern = regexp.MustCompile(`(?i)\[YANKED\]`)

	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	parenDatePattern   = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)`)
	leadingDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:\s|$)`)
)

// heading holds the pieces extracted from a version heading line.
type heading struct {
	version string
	date    string
	status  Status
}

// block is a heading plus the raw lines that follow it up to the next
// version heading.
type block struct {
	heading heading
	lines   []string
}

// Parse splits a Keep a Changelog document into version entries.
//
// Parse never fails: malformed input degrades to fewer or partial entries and
// a document without version headings yields an empty Changelog. Both LF and
// CRLF line endings are accepted. Entries are returned in document order.
func Parse(content string) *Changelog {
	blocks := splitBlocks(normalizeNewlines(content))

	entries := make([]Entry, 0, len(blocks))
	for _, b := range blocks {
		entries = append(entries, b.entry())
	}

	return &Changelog{Entries: entries}
}

// ParseReader reads all of r and parses it with Parse.
func ParseReader(r io.Reader) (*Changelog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data)), nil
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitBlocks groups lines under the version heading that precedes them.
// Lines before the first heading are dropped. A "## [v] - YANKED" line for
// the currently open version marks that entry as yanked instead of opening
// a new one.
func splitBlocks(content string) []block {
	var blocks []block
	var current *block

	for _, line := range strings.Split(content, "\n") {
		h, ok := parseHeading(line)
		if !ok {
			if current != nil {
				current.lines = append(current.lines, line)
			}
			continue
		}

		if current != nil && isYankedMarkerFor(line, current.heading.version) {
			current.heading.status = StatusYanked
			continue
		}

		if current != nil {
			blocks = append(blocks, *current)
		}
		current = &block{heading: h}
	}

	if current != nil {
		blocks = append(blocks, *current)
	}

	return blocks
}

// entry converts a block into an Entry. Leading blank lines are skipped,
// interior blank lines and subsection headings are kept verbatim.
func (b block) entry() Entry {
	var body []string
	for _, line := range b.lines {
		if len(body) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		body = append(body, line)
	}

	return Entry{
		Version: b.heading.version,
		Date:    b.heading.date,
		Status:  b.heading.status,
		Changes: strings.TrimSpace(strings.Join(body, "\n")),
	}
}

// parseHeading reports whether line is a version heading and extracts its parts.
func parseHeading(line string) (heading, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return heading{}, false
	}

	version := m[1]
	trailing := strings.TrimSpace(m[3])

	return heading{
		version: version,
		date:    resolveDate(line, m[2], trailing),
		status:  deriveStatus(line, version, trailing),
	}, true
}

// resolveDate picks the heading date. A parenthesized candidate wins when it
// is an exact YYYY-MM-DD date, then an exact trailing "- YYYY-MM-DD", then any
// "(YYYY-MM-DD)" anywhere on the line, then a date that starts the trailing
// text ("2014-12-13 [YANKED]"). Anything else leaves the date empty, so a
// release-tag link is never taken for a date.
//
// The whole-line scan can pick up a date from an unrelated trailing
// parenthetical; that heuristic is kept as is.
func resolveDate(line, paren, trailing string) string {
	if datePattern.MatchString(paren) {
		return paren
	}
	if datePattern.MatchString(trailing) {
		return trailing
	}
	if m := parenDatePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := leadingDatePattern.FindStringSubmatch(trailing); m != nil {
		return m[1]
	}
	return ""
}

// deriveStatus classifies a heading. Yanked markers take precedence, then the
// unreleased token, then prerelease tokens.
func deriveStatus(line, version, trailing string) Status {
	switch {
	case yankedPattern.MatchString(line), yankedTagPattern.MatchString(trailing):
		return StatusYanked
	case strings.EqualFold(version, UnreleasedVersion):
		return StatusUnreleased
	case isPrereleaseToken(version):
		return StatusPrereleased
	default:
		return StatusReleased
	}
}

// isPrereleaseToken reports whether version carries a hyphen and a lowercase
// alpha, beta or rc marker. "1.0.0-RC1" is a release.
func isPrereleaseToken(version string) bool {
	if !strings.Contains(version, "-") {
		return false
	}
	return strings.Contains(version, "alpha") || strings.Contains(version, "beta") || strings.Contains(version, "rc")
}

// isYankedMarkerFor reports whether line is a "## [version] - YANKED" marker
// for the given version.
func isYankedMarkerFor(line, version string) bool {
	m := yankedPattern.FindStringSubmatch(strings.TrimSpace(line))
	return m != nil && strings.EqualFold(m[1], version)
}

// IsValidDate reports whether date has the YYYY-MM-DD shape.
func IsValidDate(date string) bool {
	return datePattern.MatchString(date)
}
