package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes c back out as Keep a Changelog markdown. Each entry
// becomes a "## [version] - date" heading followed by its changes.
//
// Parsing the output yields the same entries, so the function is useful for
// normalizing heading styles.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if _, err := io.WriteString(w, "# Changelog\n"); err != nil {
		return err
	}

	for i := range c.Entries {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := RenderEntry(&c.Entries[i], w); err != nil {
			return fmt.Errorf("rendering version %s: %w", c.Entries[i].Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderEntry writes a single entry heading and its changes.
func RenderEntry(e *Entry, w io.Writer) error {
	if _, err := io.WriteString(w, FormatHeading(e)+"\n"); err != nil {
		return err
	}
	if e.Changes == "" {
		return nil
	}
	_, err := io.WriteString(w, "\n"+e.Changes+"\n")
	return err
}

// FormatHeading formats the version heading line for an entry.
func FormatHeading(e *Entry) string {
	switch {
	case e.Status == StatusYanked && e.Date != "":
		return fmt.Sprintf("## [%s] - %s [YANKED]", e.Version, e.Date)
	case e.Status == StatusYanked:
		return fmt.Sprintf("## [%s] - YANKED", e.Version)
	case e.Date != "":
		return fmt.Sprintf("## [%s] - %s", e.Version, e.Date)
	default:
		return fmt.Sprintf("## [%s]", e.Version)
	}
}
