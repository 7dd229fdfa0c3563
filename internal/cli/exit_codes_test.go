// Package cli tests exit code mapping for changelog-reader.
// Related: internal/cli/exit_codes.go
// Tags: cli, exit-codes, errors

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/changelog-reader/internal/changelog"
	"github.com/ariel-frischer/changelog-reader/internal/config"
	clierrors "github.com/ariel-frischer/changelog-reader/internal/errors"
	"github.com/ariel-frischer/changelog-reader/internal/fetch"
	"github.com/ariel-frischer/changelog-reader/internal/git"
	"github.com/ariel-frischer/changelog-reader/internal/reader"
	"github.com/ariel-frischer/changelog-reader/internal/repourl"
)

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		constant int
		want     int
	}{
		"ExitSuccess":          {constant: ExitSuccess, want: 0},
		"ExitValidationFailed": {constant: ExitValidationFailed, want: 1},
		"ExitInvalidArguments": {constant: ExitInvalidArguments, want: 3},
		"ExitFetchFailed":      {constant: ExitFetchFailed, want: 4},
		"ExitRuntimeError":     {constant: ExitRuntimeError, want: 5},
		"ExitNotFound":         {constant: ExitNotFound, want: 6},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.constant)
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":            {err: nil, want: ExitSuccess},
		"exit error":     {err: NewExitError(7), want: 7},
		"wrapped exit":   {err: fmt.Errorf("ctx: %w", NewExitError(ExitNotFound)), want: ExitNotFound},
		"cli validation": {err: clierrors.ValidationFailed(errors.New("bad")), want: ExitValidationFailed},
		"cli fetch":      {err: clierrors.FetchFailed(errors.New("down")), want: ExitFetchFailed},
		"cli config":     {err: clierrors.ConfigFailed(errors.New("bad")), want: ExitInvalidArguments},
		"cli runtime":    {err: clierrors.FileNotWritable(errors.New("ro")), want: ExitRuntimeError},
		"plain error":    {err: errors.New(`unknown flag: --nope`), want: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestToCLIError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          error
		wantCategory clierrors.ErrorCategory
		wantCode     int
	}{
		"validation": {
			err:          &reader.ValidationFailedError{Result: changelog.ValidationResult{Errors: []string{"x"}}},
			wantCategory: clierrors.Validation,
			wantCode:     ExitValidationFailed,
		},
		"version not found": {
			err:          &changelog.VersionNotFoundError{Version: "9.9.9", AvailableVersions: []string{"1.0.0"}},
			wantCategory: clierrors.NotFound,
			wantCode:     ExitNotFound,
		},
		"empty content": {
			err:          reader.ErrEmptyContent,
			wantCategory: clierrors.NotFound,
			wantCode:     ExitNotFound,
		},
		"no entries": {
			err:          fmt.Errorf("load: %w", reader.ErrNoEntries),
			wantCategory: clierrors.NotFound,
			wantCode:     ExitNotFound,
		},
		"invalid url": {
			err:          &repourl.InvalidURLError{URL: "x"},
			wantCategory: clierrors.Argument,
			wantCode:     ExitInvalidArguments,
		},
		"yaml config": {
			err:          config.ErrYAMLNotSupported,
			wantCategory: clierrors.Configuration,
			wantCode:     ExitInvalidArguments,
		},
		"config validation": {
			err:          fmt.Errorf("config validation failed: %w", &config.ValidationError{Field: "ref", Message: "is required"}),
			wantCategory: clierrors.Configuration,
			wantCode:     ExitInvalidArguments,
		},
		"no repository": {
			err:          fmt.Errorf("from_remote: %w", reader.ErrNoRepository),
			wantCategory: clierrors.Configuration,
			wantCode:     ExitInvalidArguments,
		},
		"missing git remote": {
			err:          fmt.Errorf("from_remote: %w: upstream", git.ErrRemoteNotFound),
			wantCategory: clierrors.Configuration,
			wantCode:     ExitInvalidArguments,
		},
		"output file": {
			err:          fmt.Errorf("%w %q: %w", reader.ErrOutputFile, "/ro/x", errors.New("permission denied")),
			wantCategory: clierrors.Runtime,
			wantCode:     ExitRuntimeError,
		},
		"http status": {
			err:          &fetch.StatusError{URL: "https://example.com/CHANGELOG.md", StatusCode: 500, Status: "500 Internal Server Error"},
			wantCategory: clierrors.Fetch,
			wantCode:     ExitFetchFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cliErr := toCLIError(tt.err)
			assert.Equal(t, tt.wantCategory, cliErr.Category)
			assert.Equal(t, tt.wantCode, ExitCode(cliErr))
			assert.ErrorIs(t, cliErr, tt.err)
		})
	}
}

func TestToCLIError_KeepsCLIErrors(t *testing.T) {
	t.Parallel()

	orig := clierrors.NewArgumentError("bad flag")
	assert.Same(t, orig, toCLIError(fmt.Errorf("wrapped: %w", orig)))
}
