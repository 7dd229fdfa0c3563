package cli

import (
	"context"
	"io"

	"github.com/fatih/color"

	"github.com/ariel-frischer/changelog-reader/internal/fetch"
	"github.com/ariel-frischer/changelog-reader/internal/progress"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
)

// symbols returns the status symbols for w.
func (o *options) symbols(w io.Writer) progress.ProgressSymbols {
	return progress.SelectSymbols(progress.DetectTerminalCapabilities(w, o.getenv))
}

// spinnerFetcher shows a spinner on w while a remote changelog downloads.
type spinnerFetcher struct {
	next fetch.Fetcher
	w    io.Writer
	caps progress.TerminalCapabilities
}

func (s *spinnerFetcher) Fetch(ctx context.Context, location string) (string, error) {
	if !repourl.IsURL(location) {
		return s.next.Fetch(ctx, location)
	}

	stop := progress.StartSpinner(s.w, s.caps, "Fetching "+location)
	defer stop()

	return s.next.Fetch(ctx, location)
}

// paint returns a color SprintFunc, or one that leaves text unchanged when
// plain is set.
func paint(plain bool, attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if plain {
		c.DisableColor()
	}
	return c.SprintFunc()
}
