package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette holds the styles of the error layout. A disabled palette returns
// text unchanged.
type palette struct {
	label, message, category func(a ...interface{}) string
	fix, bullet              func(a ...interface{}) string
	usageLabel, usage        func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	style := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if !enabled {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	return palette{
		label:      style(color.FgRed, color.Bold),
		message:    style(color.FgRed),
		category:   style(color.FgYellow),
		fix:        style(color.FgGreen, color.Bold),
		bullet:     style(color.FgGreen),
		usageLabel: style(color.FgCyan, color.Bold),
		usage:      style(color.FgCyan),
	}
}

// FormatError formats a CLIError for display in the terminal.
// It uses colors unless color output is disabled (NO_COLOR or not a TTY).
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, newPalette(!color.NoColor))
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, newPalette(false))
}

// formatError lays out the message, the optional usage line and the
// remediation steps as a bulleted list.
func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
	for _, step := range err.Remediation {
		fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
	}
	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w, using the CLIError layout when err carries one
// and the Runtime category otherwise.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	FprintError(w, cliErr)
}
