// Package cli implements the changelog-reader command line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	"github.com/ariel-frischer/changelog-reader/internal/config"
	clierrors "github.com/ariel-frischer/changelog-reader/internal/errors"
	"github.com/ariel-frischer/changelog-reader/internal/fetch"
	"github.com/ariel-frischer/changelog-reader/internal/git"
	"github.com/ariel-frischer/changelog-reader/internal/logging"
	"github.com/ariel-frischer/changelog-reader/internal/progress"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
)

// Command groups for help output
const (
	GroupRead   = "read"
	GroupManage = "manage"
)

// options holds the values of the global flags.
type options struct {
	configFile string
	verbose    bool
	debug      bool
	plain      bool

	path                 string
	repoURL              string
	ref                  string
	repoType             string
	token                string
	validationLevel      string
	validationDepth      int
	outputFile           string
	format               string
	skipCertificateCheck bool
	timeout              time.Duration
	retries              int
	fromRemote           bool
	remote               string
	localRef             string

	// getenv is os.Getenv outside tests.
	getenv func(string) string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	opts := &options{getenv: getenv}

	cmd := &cobra.Command{
		Use:   "changelog-reader [version]",
		Short: "Read entries from a Keep a Changelog CHANGELOG.md",
		Long: `Read a version entry from a CHANGELOG.md in the Keep a Changelog format.

The changelog can be a local file, a URL to the file, or a repository on
GitHub, Gitea, GitLab or Bitbucket. Without a version the first entry
(usually Unreleased or the newest release) is printed.

A changelog that does not exist is not an error: the status is reported as
"nofound" and the command exits 0.

Configuration precedence (highest to lowest):
  1. Command line flags
  2. Environment variables (CHANGELOG_READER_*)
  3. Config file (.changelog-reader.json, .changelogrc, or --config)
  4. Built-in defaults`,
		Example: `  # Latest entry of ./CHANGELOG.md
  changelog-reader

  # A specific version
  changelog-reader 1.2.0

  # From a repository at a tag, as JSON
  changelog-reader --repo-url https://github.com/owner/repo --ref v1.2.0 --format json

  # Write GitHub Actions outputs and fail on formatting errors
  changelog-reader --format github --validation-level error`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, opts, args)
		},
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupRead, Title: "Reading:"},
		&cobra.Group{ID: GroupManage, Title: "Configuration and info:"},
	)

	registerFlags(cmd, opts)

	cmd.AddCommand(
		newVersionsCmd(opts),
		newValidateCmd(opts),
		newResolveCmd(opts),
		newWatchCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)

	return cmd
}

func registerFlags(cmd *cobra.Command, opts *options) {
	pf := cmd.PersistentFlags()

	pf.StringVar(&opts.configFile, "config", "", "Config file (default: .changelog-reader.json in the working directory)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Show progress information")
	pf.BoolVar(&opts.debug, "debug", false, "Show debug information")
	pf.BoolVar(&opts.plain, "plain", false, "Plain output (no colors/icons/spinner)")

	pf.StringVarP(&opts.path, "path", "p", "", "Local path, file URL or repository URL of the changelog (default ./CHANGELOG.md)")
	pf.StringVar(&opts.repoURL, "repo-url", "", "Repository URL; CHANGELOG.md is fetched from its root at --ref")
	pf.StringVar(&opts.ref, "ref", "main", "Branch, tag or commit used with repository URLs")
	pf.StringVar(&opts.repoType, "repo-type", "auto", "Repository host: auto, github, gitea, gitlab, bitbucket")
	pf.StringVar(&opts.token, "token", "", "Access token for private repositories (default $GITHUB_TOKEN)")
	pf.StringVar(&opts.validationLevel, "validation-level", "none", "Validation level: none, warn, error")
	pf.IntVar(&opts.validationDepth, "validation-depth", changelog.DefaultValidationDepth, "Number of most recent entries to validate")
	pf.StringVarP(&opts.outputFile, "output-file", "o", "", "Write the entry's changes to this file")
	pf.StringVarP(&opts.format, "format", "f", "text", "Output format: "+strings.Join(changelog.ValidFormats(), ", "))
	pf.BoolVar(&opts.skipCertificateCheck, "skip-certificate-check", false, "Skip TLS certificate verification (self-signed hosts)")
	pf.DurationVar(&opts.timeout, "timeout", fetch.DefaultTimeout, "HTTP request timeout")
	pf.IntVar(&opts.retries, "retries", fetch.DefaultRetries, "Retries for transient HTTP failures")
	pf.BoolVar(&opts.fromRemote, "from-remote", false, "Derive --repo-url from the local git remote")
	pf.StringVar(&opts.remote, "remote", git.DefaultRemote, "Git remote used by --from-remote")
	pf.StringVar(&opts.localRef, "local-ref", "", "Read the local changelog as committed at this git ref")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintAny(cmd.ErrOrStderr(), err)
	}
	return ExitCode(err)
}

// overrides returns the config values of flags set on the command line.
func (o *options) overrides(cmd *cobra.Command, args []string) map[string]interface{} {
	values := map[string]interface{}{
		"path":                   o.path,
		"repo-url":               o.repoURL,
		"ref":                    o.ref,
		"repo-type":              o.repoType,
		"token":                  o.token,
		"validation-level":       o.validationLevel,
		"validation-depth":       o.validationDepth,
		"output-file":            o.outputFile,
		"format":                 o.format,
		"skip-certificate-check": o.skipCertificateCheck,
		"timeout":                o.timeout,
		"retries":                o.retries,
		"from-remote":            o.fromRemote,
		"remote":                 o.remote,
		"local-ref":              o.localRef,
	}

	out := make(map[string]interface{})
	for flag, value := range values {
		if cmd.Flags().Changed(flag) {
			out[strings.ReplaceAll(flag, "-", "_")] = value
		}
	}
	if len(args) > 0 {
		out["version"] = args[0]
	}
	return out
}

// loadConfig merges flags over the config file and environment. A token
// from nowhere else falls back to GITHUB_TOKEN.
func (o *options) loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: o.configFile,
		Overrides:  o.overrides(cmd, args),
	})
	if err != nil {
		return config.Config{}, err
	}

	if cfg.Token == "" {
		cfg.Token = o.getenv("GITHUB_TOKEN")
	}
	return cfg, nil
}

func (o *options) logger(w io.Writer) *logrus.Logger {
	return logging.New(logging.Options{
		Verbose: o.verbose,
		Debug:   o.debug || logging.DebugFromEnv(o.getenv),
		Writer:  w,
	})
}

// readerOptions builds everything reader.Run needs for cfg.
func (o *options) readerOptions(cmd *cobra.Command, cfg config.Config, log *logrus.Logger) (reader.Options, error) {
	var fetcher fetch.Fetcher = fetch.New(fetch.Options{
		Token:              cfg.Token,
		InsecureSkipVerify: cfg.SkipCertificateCheck,
		Timeout:            cfg.Timeout,
		Retries:            cfg.Retries,
		Logger:             log,
	})
	if caps := progress.DetectTerminalCapabilities(cmd.ErrOrStderr(), o.getenv); !o.plain && caps.IsTTY {
		fetcher = &spinnerFetcher{next: fetcher, w: cmd.ErrOrStderr(), caps: caps}
	}

	ropts := reader.Options{
		Config:  cfg,
		Fetcher: fetcher,
		Logger:  log,
	}

	if cfg.FromRemote || cfg.LocalRef != "" {
		repo, err := git.Open("", log)
		if err != nil {
			return reader.Options{}, clierrors.GitNotRepository(err)
		}
		branch, _ := repo.CurrentBranch()
		log.WithFields(logrus.Fields{"root": repo.Root(), "branch": branch}).Debug("opened git repository")
		ropts.Git = repo
	}

	return ropts, nil
}
