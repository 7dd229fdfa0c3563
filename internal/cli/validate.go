package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	"github.com/ariel-frischer/changelog-reader/internal/progress"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
)

func newValidateCmd(opts *options) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the newest entries for Keep a Changelog conformance",
		Long: `Check the most recent entries (see --validation-depth) for semantic
version numbers, release dates and empty change lists.

Findings are reported as warnings. With --strict (or --validation-level error)
the command exits 1 when any are found.`,
		Example: `  # Report problems in the ten newest entries
  changelog-reader validate

  # Fail a CI job on any problem in the three newest entries
  changelog-reader validate --strict --validation-depth 3`,
		GroupID: GroupRead,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat findings as errors (same as --validation-level error)")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *options, strict bool) error {
	cfg, err := opts.loadConfig(cmd, nil)
	if err != nil {
		return toCLIError(err)
	}
	log := opts.logger(cmd.ErrOrStderr())

	ropts, err := opts.readerOptions(cmd, cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	src, err := reader.Load(cmd.Context(), ropts)
	if err != nil {
		if reader.IsNotFound(err) {
			_, err := fmt.Fprintln(out, "CHANGELOG.md not found (status: nofound)")
			return err
		}
		return toCLIError(err)
	}

	level := changelog.LevelWarn
	if strict || cfg.ValidationLevel == string(changelog.LevelError) {
		level = changelog.LevelError
	}

	result := changelog.Validate(src.Changelog, changelog.ValidationOptions{
		Level: level,
		Depth: cfg.ValidationDepth,
	})

	printValidation(out, result, opts.plainOutput(out), opts.symbols(out))

	if !result.Valid {
		return toCLIError(&reader.ValidationFailedError{Result: result})
	}
	return nil
}

func printValidation(w io.Writer, result changelog.ValidationResult, plain bool, symbols progress.ProgressSymbols) {
	yellow := paint(plain, color.FgYellow)
	red := paint(plain, color.FgRed)
	green := paint(plain, color.FgGreen)

	for _, msg := range result.Errors {
		fmt.Fprintf(w, "%s %s\n", red("error:"), msg)
	}
	for _, msg := range result.Warnings {
		fmt.Fprintf(w, "%s %s\n", yellow("warning:"), msg)
	}

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintf(w, "%s no problems found\n", green(symbols.Checkmark))
	}
}
