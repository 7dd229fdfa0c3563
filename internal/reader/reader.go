// Package reader ties the changelog reader together: it decides where the
// changelog lives, fetches it, parses and validates it, and selects the
// requested entry.
package reader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	"github.com/ariel-frischer/changelog-reader/internal/config"
	"github.com/ariel-frischer/changelog-reader/internal/fetch"
	"github.com/ariel-frischer/changelog-reader/internal/git"
	"github.com/ariel-frischer/changelog-reader/internal/logging"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
)

// maxListedVersions bounds the versions logged after parsing.
const maxListedVersions = 10

var (
	// ErrEmptyContent is returned when the changelog has no non-whitespace text.
	ErrEmptyContent = errors.New("changelog file is empty")
	// ErrNoEntries is returned when the changelog has no version headings.
	ErrNoEntries = errors.New("no changelog entries found")
	// ErrNoRepository is returned when a git lookup is needed but no
	// repository is available.
	ErrNoRepository = errors.New("not inside a git repository")
	// ErrOutputFile wraps failures to write the output file.
	ErrOutputFile = errors.New("failed to write output file")
)

// ValidationFailedError is returned at validation level error when the
// validator reported at least one error.
type ValidationFailedError struct {
	Result changelog.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return "changelog validation failed:\n" + strings.Join(e.Result.Errors, "\n")
}

// Repository is the local git access the reader needs for from_remote and
// local_ref.
type Repository interface {
	RemoteURL(name string) (string, error)
	ReadFileAtRef(ref, path string) (string, error)
}

// Options configures a read.
type Options struct {
	Config  config.Config
	Fetcher fetch.Fetcher
	Logger  logrus.FieldLogger
	// Git is consulted only when Config.FromRemote or Config.LocalRef is set.
	Git Repository
}

// Source is a fetched and parsed changelog.
type Source struct {
	Location  string
	Changelog *changelog.Changelog
}

// Result is the outcome of Run. When the changelog does not exist Status is
// changelog.StatusNotFound and Entry is nil.
type Result struct {
	Entry       *changelog.Entry
	Status      string
	Location    string
	Entries     int
	Validation  *changelog.ValidationResult
	ChangesFile string
}

// Found reports whether the changelog existed.
func (r *Result) Found() bool {
	return r.Status != changelog.StatusNotFound
}

// Record returns the output record for the result.
func (r *Result) Record() changelog.Record {
	if r.Entry == nil {
		return changelog.NofoundRecord()
	}
	rec := changelog.NewRecord(*r.Entry)
	rec.ChangesFile = r.ChangesFile
	return rec
}

// Run reads the configured changelog and returns the requested entry.
// A changelog that does not exist is a normal result with status "nofound".
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logger(opts)
	cfg := opts.Config

	logInputs(log, cfg)

	src, err := Load(ctx, opts)
	if err != nil {
		if IsNotFound(err) {
			log.WithError(err).Debug("changelog not found")
			log.Info("CHANGELOG.md not found at the specified location")
			return &Result{Status: changelog.StatusNotFound, Location: locationOf(err)}, nil
		}
		return nil, err
	}

	result := &Result{
		Location: src.Location,
		Entries:  src.Changelog.Len(),
	}

	validation, err := Validate(src.Changelog, cfg, log)
	if err != nil {
		return nil, err
	}
	result.Validation = validation

	log.WithField("version", displayVersion(cfg.Version)).Info("searching for version")
	entry, err := src.Changelog.GetVersion(cfg.Version)
	if err != nil {
		log.WithField("available", strings.Join(src.Changelog.ListVersions(), ", ")).
			Info("version entry not found")
		return nil, err
	}
	log.WithField("version", entry.Version).Info("found entry")

	result.Entry = entry
	result.Status = string(entry.Status)

	if cfg.OutputFile != "" {
		path, err := WriteChanges(cfg.OutputFile, entry.Changes)
		if err != nil {
			return nil, err
		}
		log.WithField("path", path).Info("changelog changes written")
		result.ChangesFile = path
	}

	return result, nil
}

// Load resolves the changelog location, fetches it and parses it. A missing
// changelog is reported with an error for which IsNotFound is true; git
// lookup failures are not.
func Load(ctx context.Context, opts Options) (*Source, error) {
	log := logger(opts)
	cfg := opts.Config

	if opts.Fetcher == nil {
		return nil, errors.New("no fetcher configured")
	}

	if cfg.FromRemote && cfg.RepoURL == "" {
		if opts.Git == nil {
			return nil, fmt.Errorf("from_remote: %w", ErrNoRepository)
		}
		url, err := opts.Git.RemoteURL(cfg.Remote)
		if err != nil {
			return nil, fmt.Errorf("from_remote: %w", err)
		}
		log.WithField("repo_url", url).Info("derived repository URL from git remote")
		cfg.RepoURL = url
	}

	location, err := ResolveLocation(cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("location", location).Info("reading changelog")

	content, err := read(ctx, opts, cfg, location)
	if err != nil {
		return nil, err
	}
	log.WithField("chars", len(content)).Info("read changelog content")

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	parsed := changelog.Parse(content)
	if parsed.Len() == 0 {
		return nil, ErrNoEntries
	}

	logVersions(log, parsed)
	return &Source{Location: location, Changelog: parsed}, nil
}

// read fetches location, or reads it from git when a local ref is set.
func read(ctx context.Context, opts Options, cfg config.Config, location string) (string, error) {
	if cfg.LocalRef == "" || repourl.IsURL(location) {
		content, err := opts.Fetcher.Fetch(ctx, location)
		if err != nil && fetch.IsNotFound(err) {
			return "", &missingError{location: location, err: err}
		}
		return content, err
	}

	if opts.Git == nil {
		return "", fmt.Errorf("local_ref: %w", ErrNoRepository)
	}
	logger(opts).WithField("ref", cfg.LocalRef).Info("reading changelog from git ref")
	content, err := opts.Git.ReadFileAtRef(cfg.LocalRef, location)
	if err != nil {
		if errors.Is(err, git.ErrFileNotFound) {
			return "", &missingError{location: location, err: err}
		}
		return "", fmt.Errorf("local_ref: %w", err)
	}
	return content, nil
}

// ResolveLocation decides what to fetch. repo_url wins; a path that is a
// repository root URL is treated the same way; otherwise path is used as-is,
// falling back to ./CHANGELOG.md.
func ResolveLocation(cfg config.Config) (string, error) {
	repoType, err := repourl.ParseRepoType(cfg.RepoType)
	if err != nil {
		return "", err
	}

	switch {
	case cfg.RepoURL != "":
		return repourl.ChangelogURL(cfg.RepoURL, cfg.Ref, repoType)
	case cfg.Path != "" && repourl.IsRepoRootURL(cfg.Path):
		return repourl.ChangelogURL(cfg.Path, cfg.Ref, repoType)
	case cfg.Path != "":
		return cfg.Path, nil
	default:
		return config.DefaultPath, nil
	}
}

// Validate runs the entry validator unless the level is none. Findings are
// logged; at level error any finding fails with ValidationFailedError.
func Validate(c *changelog.Changelog, cfg config.Config, log logrus.FieldLogger) (*changelog.ValidationResult, error) {
	level, err := changelog.ParseValidationLevel(cfg.ValidationLevel)
	if err != nil {
		return nil, err
	}
	if level == changelog.LevelNone {
		return nil, nil
	}

	result := changelog.Validate(c, changelog.ValidationOptions{
		Level: level,
		Depth: cfg.ValidationDepth,
	})

	for _, w := range result.Warnings {
		log.Warn(w)
	}
	for _, e := range result.Errors {
		log.Error(e)
	}

	if level == changelog.LevelError && !result.Valid {
		return &result, &ValidationFailedError{Result: result}
	}
	return &result, nil
}

// WriteChanges writes changes verbatim to path and returns the absolute path.
func WriteChanges(path, changes string) (string, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrOutputFile, path, err)
	}
	if err := os.WriteFile(resolved, []byte(changes), 0o644); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrOutputFile, resolved, err)
	}
	return resolved, nil
}

// missingError marks a changelog that does not exist at location.
type missingError struct {
	location string
	err      error
}

func (e *missingError) Error() string {
	var nf *fetch.NotFoundError
	if errors.As(e.err, &nf) {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %v", e.location, e.err)
}

func (e *missingError) Unwrap() error {
	return e.err
}

// IsNotFound reports whether err from Load or Run means the changelog itself
// is missing. Failures to resolve the location, such as an unknown git remote
// or ref, are not.
func IsNotFound(err error) bool {
	var me *missingError
	return errors.As(err, &me)
}

// locationOf returns the location of a missing changelog.
func locationOf(err error) string {
	var nf *fetch.NotFoundError
	if errors.As(err, &nf) {
		return nf.Location
	}
	var me *missingError
	if errors.As(err, &me) {
		return me.location
	}
	return ""
}

func logger(opts Options) logrus.FieldLogger {
	if opts.Logger == nil {
		return logging.Discard()
	}
	return opts.Logger
}

func logInputs(log logrus.FieldLogger, cfg config.Config) {
	log.WithFields(logrus.Fields{
		"path":             orEmpty(cfg.Path),
		"repo_url":         orEmpty(cfg.RepoURL),
		"ref":              cfg.Ref,
		"repo_type":        cfg.RepoType,
		"version":          displayVersion(cfg.Version),
		"validation_level": cfg.ValidationLevel,
		"validation_depth": cfg.ValidationDepth,
		"config_file":      orEmpty(cfg.File),
		"token":            logging.MaskToken(cfg.Token),
		"output_file":      orEmpty(cfg.OutputFile),
	}).Debug("inputs")
}

func logVersions(log logrus.FieldLogger, c *changelog.Changelog) {
	log.WithField("count", c.Len()).Info("parsed changelog entries")
	for i, e := range c.Entries {
		if i == maxListedVersions {
			log.Debugf("  ... and %d more", c.Len()-maxListedVersions)
			break
		}
		line := fmt.Sprintf("  %d. %s (%s)", i+1, e.Version, e.Status)
		if e.HasDate() {
			line += " - " + e.Date
		}
		log.Debug(line)
	}
}

func displayVersion(v string) string {
	if v == "" {
		return "(latest)"
	}
	return v
}

func orEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}
