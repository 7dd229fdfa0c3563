package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	"github.com/ariel-frischer/changelog-reader/internal/progress"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
)

// runRead reads one entry and writes it in the configured format.
func runRead(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := opts.loadConfig(cmd, args)
	if err != nil {
		return toCLIError(err)
	}

	log := opts.logger(cmd.ErrOrStderr())
	if cfg.File != "" {
		log.WithField("file", cfg.File).Info("loaded config file")
	}

	ropts, err := opts.readerOptions(cmd, cfg, log)
	if err != nil {
		return err
	}

	result, err := reader.Run(cmd.Context(), ropts)
	if err != nil {
		return toCLIError(err)
	}

	return opts.writeResult(cmd, changelog.OutputFormat(cfg.Format), result)
}

// writeResult prints result in format. The github format is appended to the
// file named by GITHUB_OUTPUT when set.
func (o *options) writeResult(cmd *cobra.Command, format changelog.OutputFormat, result *reader.Result) error {
	out := cmd.OutOrStdout()

	switch format {
	case changelog.FormatJSON:
		return changelog.EncodeJSON(result.Record(), out)
	case changelog.FormatYAML:
		return changelog.EncodeYAML(result.Record(), out)
	case changelog.FormatGitHub:
		return o.writeGitHubOutput(out, result.Record())
	case changelog.FormatMarkdown:
		if !result.Found() {
			return nil
		}
		return changelog.RenderEntry(result.Entry, out)
	default:
		if !result.Found() {
			_, err := fmt.Fprintf(out, "CHANGELOG.md not found at %s (status: %s)\n", displayLocation(result.Location), result.Status)
			return err
		}
		if err := changelog.FormatEntry(*result.Entry, out, changelog.FormatOptions{Plain: o.plainOutput(out)}); err != nil {
			return err
		}
		if result.ChangesFile != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Changes written to: %s\n", result.ChangesFile)
		}
		return nil
	}
}

func (o *options) writeGitHubOutput(stdout io.Writer, rec changelog.Record) error {
	path := o.getenv("GITHUB_OUTPUT")
	if path == "" {
		return changelog.EncodeGitHub(rec, stdout)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()

	if err := changelog.EncodeGitHub(rec, f); err != nil {
		return fmt.Errorf("writing GITHUB_OUTPUT: %w", err)
	}
	return f.Close()
}

// plainOutput reports whether styled output should be disabled for w.
func (o *options) plainOutput(w io.Writer) bool {
	return o.plain || !progress.DetectTerminalCapabilities(w, o.getenv).SupportsColor
}

func displayLocation(location string) string {
	if location == "" {
		return "the specified location"
	}
	return location
}
