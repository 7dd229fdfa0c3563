package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	clierrors "github.com/ariel-frischer/changelog-reader/internal/errors"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
)

func newVersionsCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "versions",
		Aliases: []string{"ls"},
		Short:   "List the versions in the changelog (ls)",
		Long: `List every version entry in the changelog, newest first, with its
release date and status.`,
		Example: `  # Versions of ./CHANGELOG.md
  changelog-reader versions

  # The five newest versions of a remote repository
  changelog-reader versions --repo-url https://gitlab.com/group/project -n 5`,
		GroupID: GroupRead,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(cmd, opts, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many versions (0 for all)")

	return cmd
}

func runVersions(cmd *cobra.Command, opts *options, limit int) error {
	if limit < 0 {
		return clierrors.NewArgumentError(fmt.Sprintf("--limit must not be negative (got %d)", limit))
	}

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

	entries := src.Changelog.Entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	fopts := changelog.FormatOptions{Plain: opts.plainOutput(out)}
	for _, e := range entries {
		fmt.Fprintln(out, changelog.FormatEntrySummary(e, fopts))
	}
	return nil
}
