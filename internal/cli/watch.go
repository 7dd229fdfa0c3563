package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	clierrors "github.com/ariel-frischer/changelog-reader/internal/errors"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
	"github.com/ariel-frischer/changelog-reader/internal/watch"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [version]",
		Short: "Print an entry again every time the local changelog changes",
		Long: `Read the entry once, then keep watching the local changelog file and
print the entry again after every save. Stop with Ctrl+C.

Only local files can be watched; --repo-url and URL paths are rejected.`,
		Example: `  # Follow the Unreleased section while editing
  changelog-reader watch Unreleased`,
		GroupID: GroupRead,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args)
		},
	}
}

func runWatch(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := opts.loadConfig(cmd, args)
	if err != nil {
		return toCLIError(err)
	}
	log := opts.logger(cmd.ErrOrStderr())

	if cfg.FromRemote || cfg.LocalRef != "" {
		return clierrors.InvalidFlagCombination("watch with --from-remote or --local-ref",
			"watch follows the working tree copy of the changelog")
	}

	location, err := reader.ResolveLocation(cfg)
	if err != nil {
		return toCLIError(err)
	}
	if repourl.IsURL(location) {
		return clierrors.NewArgumentError(
			fmt.Sprintf("cannot watch remote changelog %s", location),
			"Pass a local file with --path",
		)
	}
	cfg.Path = location

	ropts, err := opts.readerOptions(cmd, cfg, log)
	if err != nil {
		return err
	}
	format := changelog.OutputFormat(cfg.Format)

	render := func() {
		result, err := reader.Run(cmd.Context(), ropts)
		if err != nil {
			clierrors.FprintAny(cmd.ErrOrStderr(), toCLIError(err))
			return
		}
		if err := opts.writeResult(cmd, format, result); err != nil {
			log.WithError(err).Error("writing result")
		}
	}

	w, err := watch.New(location, watch.WithLogger(log))
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "cannot watch "+location)
	}
	defer w.Close()

	render()
	log.WithField("path", w.Path()).Info("watching for changes")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Watch(ctx, render)
}
