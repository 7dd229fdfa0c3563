package changelog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// StatusNotFound is reported instead of an entry status when the changelog
// itself could not be found.
const StatusNotFound = "nofound"

// OutputFormat selects how a Record is written.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
	FormatGitHub   OutputFormat = "github"
)

// ValidFormats returns the supported output formats.
func ValidFormats() []string {
	return []string{
		string(FormatText),
		string(FormatMarkdown),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatGitHub),
	}
}

// Record is the output shape for a resolved entry.
type Record struct {
	Version        string `json:"version" yaml:"version"`
	Date           string `json:"date" yaml:"date"`
	Status         string `json:"status" yaml:"status"`
	Changes        string `json:"changes" yaml:"changes"`
	ChangesEscaped string `json:"changes_escaped" yaml:"changes_escaped"`
	ChangesFile    string `json:"changes_file,omitempty" yaml:"changes_file,omitempty"`
}

// NewRecord builds the output record for an entry.
func NewRecord(e Entry) Record {
	return Record{
		Version:        e.Version,
		Date:           e.Date,
		Status:         string(e.Status),
		Changes:        e.Changes,
		ChangesEscaped: EscapeChanges(e.Changes),
	}
}

// NofoundRecord is the record emitted when the changelog does not exist.
func NofoundRecord() Record {
	return Record{Status: StatusNotFound}
}

// EscapeChanges replaces every CRLF, CR and LF with the two characters `\n`,
// producing a single-line value.
func EscapeChanges(changes string) string {
	return strings.ReplaceAll(normalizeNewlines(changes), "\n", `\n`)
}

// EncodeJSON writes r as indented JSON.
func EncodeJSON(r Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// EncodeYAML writes r as a YAML document.
func EncodeYAML(r Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// EncodeGitHub writes r in the GITHUB_OUTPUT file syntax: one key=value line
// per output, with the multi-line changes written as a heredoc.
func EncodeGitHub(r Record, w io.Writer) error {
	var b strings.Builder

	writeOutputLine(&b, "version", r.Version)
	writeOutputLine(&b, "date", r.Date)
	writeOutputLine(&b, "status", r.Status)

	delim := heredocDelimiter(r.Changes)
	fmt.Fprintf(&b, "changes<<%s\n%s\n%s\n", delim, r.Changes, delim)

	writeOutputLine(&b, "changes-escaped", r.ChangesEscaped)
	if r.ChangesFile != "" {
		writeOutputLine(&b, "changes-file", r.ChangesFile)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeOutputLine writes a single-line output. Newlines are escaped so a
// value can never break the key=value framing.
func writeOutputLine(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s=%s\n", key, EscapeChanges(value))
}

// heredocDelimiter returns a delimiter that does not occur as a line in body.
func heredocDelimiter(body string) string {
	lines := strings.Split(normalizeNewlines(body), "\n")
	for i := 0; ; i++ {
		delim := "CHANGELOG_EOF"
		if i > 0 {
			delim = fmt.Sprintf("CHANGELOG_EOF_%d", i)
		}
		if !containsLine(lines, delim) {
			return delim
		}
	}
}

func containsLine(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}
