package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps Keep a Changelog subsection names to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// statusColors maps entry statuses to the color of the status badge.
var statusColors = map[Status]*color.Color{
	StatusReleased:    color.New(color.FgGreen),
	StatusUnreleased:  color.New(color.FgCyan),
	StatusPrereleased: color.New(color.FgYellow),
	StatusYanked:      color.New(color.FgRed),
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatEntry writes a single entry with terminal styling: a version header
// with a status badge, followed by the changes. Known subsection headings
// ("### Added", "### Fixed", ...) are colored and their bullets wrapped.
func FormatEntry(e Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeEntryHeader(e, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if e.IsEmpty() {
		return nil
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n%s\n", e.Changes)
		return err
	}

	fmt.Fprintln(w)
	return formatChanges(e.Changes, w, width)
}

// FormatEntries writes several entries separated by blank lines.
func FormatEntries(entries []Entry, w io.Writer, opts FormatOptions) error {
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := FormatEntry(e, w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", e.Version, err)
		}
	}
	return nil
}

// writeEntryHeader writes the version header line.
func writeEntryHeader(e Entry, w io.Writer, opts FormatOptions) error {
	header := headerText(e)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s [%s]\n", header, e.Status)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	badge := string(e.Status)
	if c, ok := statusColors[e.Status]; ok {
		badge = c.Sprint(badge)
	}
	_, err := fmt.Fprintf(w, "## %s [%s]\n", bold(header), badge)
	return err
}

func headerText(e Entry) string {
	switch {
	case e.IsUnreleased():
		return UnreleasedVersion
	case e.Date != "":
		return fmt.Sprintf("v%s (%s)", e.Version, e.Date)
	default:
		return fmt.Sprintf("v%s", e.Version)
	}
}

// formatChanges writes the markdown body, styling category headings and the
// bullets beneath them.
func formatChanges(changes string, w io.Writer, width int) error {
	var style *CategoryStyle

	for _, line := range strings.Split(changes, "\n") {
		if name, ok := categoryHeading(line); ok {
			if s, known := categoryStyles[strings.ToLower(name)]; known {
				style = &s
				colored := s.Color.SprintFunc()
				if _, err := fmt.Fprintf(w, "%s %s\n", colored(s.Icon), colored(name)); err != nil {
					return err
				}
				continue
			}
			style = nil
		}

		if err := writeChangeLine(line, style, w, width); err != nil {
			return err
		}
	}

	return nil
}

// categoryHeading reports whether line is a "### Name" subsection heading.
func categoryHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "### ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "### ")), true
}

// writeChangeLine writes a body line. Bullets are wrapped to width and take
// the color of the enclosing category.
func writeChangeLine(line string, style *CategoryStyle, w io.Writer, width int) error {
	if !isBullet(line) {
		_, err := fmt.Fprintln(w, line)
		return err
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	prefix := indent + "  "
	wrapped := wrapText(line, width, prefix)

	if style == nil {
		_, err := fmt.Fprintln(w, wrapped)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintln(w, colored(wrapped))
	return err
}

func isBullet(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary returns a brief one-line summary of an entry, used by
// version listings.
func FormatEntrySummary(e Entry, opts FormatOptions) string {
	date := e.Date
	if date == "" {
		date = "-"
	}
	line := fmt.Sprintf("%-20s %-10s %s", e.Version, date, e.Status)

	if opts.Plain {
		return line
	}

	if c, ok := statusColors[e.Status]; ok {
		return fmt.Sprintf("%-20s %-10s %s", e.Version, date, c.Sprint(e.Status))
	}
	return line
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}

// FirstLine returns the first non-heading line of the changes, truncated for
// one-line displays.
func FirstLine(e Entry) string {
	for _, line := range strings.Split(e.Changes, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "-* ")
		return truncateText(trimmed, 60)
	}
	return ""
}
