package cli

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	"github.com/ariel-frischer/changelog-reader/internal/config"
	clierrors "github.com/ariel-frischer/changelog-reader/internal/errors"
	"github.com/ariel-frischer/changelog-reader/internal/git"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
)

// Exit codes for the changelog-reader CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution, including a
	// missing changelog reported as status nofound
	ExitSuccess = 0

	// ExitValidationFailed indicates changelog validation failed at level error
	ExitValidationFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitFetchFailed indicates the changelog could not be read
	ExitFetchFailed = 4

	// ExitRuntimeError indicates a local failure such as an unwritable output file
	ExitRuntimeError = 5

	// ExitNotFound indicates the changelog has no matching entry
	ExitNotFound = 6
)

// ExitError carries an exit code without an additional message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that makes the CLI exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the process exit code for err. Errors that are neither an
// ExitError nor a CLIError come from flag and argument parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return categoryExitCode(cliErr.Category)
	}

	return ExitInvalidArguments
}

func categoryExitCode(c clierrors.ErrorCategory) int {
	switch c {
	case clierrors.Validation:
		return ExitValidationFailed
	case clierrors.Argument, clierrors.Configuration:
		return ExitInvalidArguments
	case clierrors.Fetch:
		return ExitFetchFailed
	case clierrors.NotFound:
		return ExitNotFound
	default:
		return ExitRuntimeError
	}
}

// classify maps domain errors onto CLI error categories.
func classify(err error) clierrors.ErrorCategory {
	var (
		validationErr *reader.ValidationFailedError
		versionErr    *changelog.VersionNotFoundError
		urlErr        *repourl.InvalidURLError
		cfgNotFound   *config.NotFoundError
		cfgFormat     *config.UnsupportedFormatError
		cfgValidation *config.ValidationError
	)

	switch {
	case errors.Is(err, reader.ErrOutputFile):
		return clierrors.Runtime
	case errors.As(err, &validationErr):
		return clierrors.Validation
	case errors.As(err, &versionErr),
		errors.Is(err, reader.ErrEmptyContent),
		errors.Is(err, reader.ErrNoEntries):
		return clierrors.NotFound
	case errors.As(err, &urlErr):
		return clierrors.Argument
	case errors.As(err, &cfgNotFound),
		errors.As(err, &cfgFormat),
		errors.As(err, &cfgValidation),
		errors.Is(err, config.ErrYAMLNotSupported),
		errors.Is(err, reader.ErrNoRepository),
		errors.Is(err, git.ErrRemoteNotFound):
		return clierrors.Configuration
	default:
		return clierrors.Fetch
	}
}

// toCLIError attaches remediation hints to a domain error.
func toCLIError(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var versionErr *changelog.VersionNotFoundError
	if errors.As(err, &versionErr) {
		return clierrors.VersionNotFound(versionErr.Version, versionErr.AvailableVersions, err)
	}

	switch classify(err) {
	case clierrors.Validation:
		return clierrors.ValidationFailed(err)
	case clierrors.NotFound:
		return clierrors.EmptyChangelog(err)
	case clierrors.Argument:
		return clierrors.InvalidRepoURL(err)
	case clierrors.Runtime:
		return clierrors.FileNotWritable(err)
	case clierrors.Configuration:
		if errors.Is(err, reader.ErrNoRepository) {
			return clierrors.GitNotRepository(err)
		}
		return clierrors.ConfigFailed(err)
	default:
		return clierrors.FetchFailed(err)
	}
}
