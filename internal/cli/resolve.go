package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/reader"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [url-or-path]",
		Short: "Print the location the changelog would be read from",
		Long: `Print the location changelog-reader would fetch, without fetching it.

A repository URL is turned into the raw CHANGELOG.md URL for --ref and
--repo-type. A browsing URL (blob/src) is rewritten to its raw form. Without
an argument the configured --path or --repo-url is resolved.`,
		Example: `  changelog-reader resolve https://github.com/owner/repo --ref v1.0.0
  changelog-reader resolve https://gitlab.com/group/project/-/blob/main/CHANGELOG.md`,
		GroupID: GroupRead,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, nil)
			if err != nil {
				return toCLIError(err)
			}

			if len(args) == 1 {
				target := args[0]
				if repourl.IsURL(target) && !repourl.IsRepoRootURL(target) {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), repourl.BlobToRaw(target))
					return err
				}
				cfg.RepoURL = ""
				cfg.Path = target
			}

			location, err := reader.ResolveLocation(cfg)
			if err != nil {
				return toCLIError(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), location)
			return err
		},
	}
}
