// Package progress detects what the terminal can display and shows a
// spinner while slow work (fetching a remote changelog) runs.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// ASCIIEnv forces ASCII symbols when set to "1".
const ASCIIEnv = "CHANGELOG_READER_ASCII"

// TerminalCapabilities describes the output stream.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set chosen for a terminal.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities detects terminal features of w.
// Checks: w is a terminal, NO_COLOR env, CHANGELOG_READER_ASCII env, terminal width.
func DetectTerminalCapabilities(w io.Writer, getenv func(string) string) TerminalCapabilities {
	f, ok := w.(*os.File)
	isTTY := ok && term.IsTerminal(int(f.Fd()))

	noColor := getenv("NO_COLOR") != ""
	forceASCII := getenv(ASCIIEnv) == "1"

	width := 0
	if isTTY {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14,
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9,
	}
}

// StartSpinner shows message with a spinner on w and returns the function
// that stops it. Nothing is drawn unless caps.IsTTY.
func StartSpinner(w io.Writer, caps TerminalCapabilities, message string) (stop func()) {
	if !caps.IsTTY {
		return func() {}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
