package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":   {category: Argument, want: "Argument Error"},
		"config":     {category: Configuration, want: "Configuration Error"},
		"fetch":      {category: Fetch, want: "Fetch Error"},
		"not found":  {category: NotFound, want: "Not Found"},
		"validation": {category: Validation, want: "Validation Error"},
		"runtime":    {category: Runtime, want: "Runtime Error"},
		"unknown":    {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("connection refused")

	assert.Nil(t, Wrap(nil, Fetch))

	wrapped := Wrap(base, Fetch, "retry later")
	require.NotNil(t, wrapped)
	assert.Equal(t, "connection refused", wrapped.Error())
	assert.Equal(t, Fetch, wrapped.Category)
	assert.ErrorIs(t, wrapped, base)

	withMsg := WrapWithMessage(base, Fetch, "reading changelog")
	assert.Equal(t, "reading changelog: connection refused", withMsg.Error())
	assert.ErrorIs(t, withMsg, base)
	assert.Nil(t, WrapWithMessage(nil, Fetch, "reading changelog"))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewArgumentError("bad flag")

	assert.Same(t, cliErr, AsCLIError(cliErr))
	assert.Same(t, cliErr, AsCLIError(fmt.Errorf("outer: %w", cliErr)))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.True(t, IsCLIError(cliErr))
	assert.False(t, IsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewArgumentError("version is required", "Pass a version", "Or omit it for the latest entry").
		WithUsage("changelog-reader <version>")

	got := FormatErrorPlain(err)

	assert.True(t, strings.HasPrefix(got, "Error [Argument Error]: version is required\n"))
	assert.Contains(t, got, "Usage: changelog-reader <version>\n")
	assert.Contains(t, got, "To fix this:\n  • Pass a version\n  • Or omit it for the latest entry\n")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintAny(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var sb strings.Builder
	FprintAny(&sb, stderrors.New("boom"))
	assert.Equal(t, "Error [Runtime Error]: boom\n", sb.String())

	sb.Reset()
	FprintAny(&sb, fmt.Errorf("ctx: %w", New(Configuration, "bad config", "fix it")))
	assert.Contains(t, sb.String(), "Error [Configuration Error]: bad config")
	assert.Contains(t, sb.String(), "fix it")

	sb.Reset()
	FprintAny(&sb, nil)
	assert.Empty(t, sb.String())
}

func TestMessages(t *testing.T) {
	base := stderrors.New(`version "9.9.9" not found`)

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"file not writable": {
			err:      FileNotWritable(stderrors.New("failed to write output file")),
			category: Runtime,
			contains: "--output-file",
		},
		"git not repository": {
			err:      GitNotRepository(stderrors.New("not inside a git repository")),
			category: Configuration,
			contains: "--from-remote",
		},
		"version not found": {
			err:      VersionNotFound("9.9.9", []string{"1.0.0", "0.9.0"}, base),
			category: NotFound,
			contains: "Available: 1.0.0, 0.9.0",
		},
		"validation failed": {
			err:      ValidationFailed(stderrors.New("changelog validation failed")),
			category: Validation,
			contains: "--validation-level warn",
		},
		"invalid repo url": {
			err:      InvalidRepoURL(stderrors.New("invalid repository URL format: x")),
			category: Argument,
			contains: "Usage: changelog-reader --repo-url",
		},
		"fetch failed": {
			err:      FetchFailed(stderrors.New("tls: bad certificate")),
			category: Fetch,
			contains: "--skip-certificate-check",
		},
		"config failed": {
			err:      ConfigFailed(stderrors.New("unsupported configuration file format: .toml")),
			category: Configuration,
			contains: "must be JSON",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, FormatErrorPlain(tt.err), tt.contains)
		})
	}
}

func TestVersionNotFound_TruncatesAvailable(t *testing.T) {
	err := VersionNotFound("x", []string{"7", "6", "5", "4", "3", "2", "1"}, stderrors.New("not found"))
	got := FormatErrorPlain(err)
	assert.Contains(t, got, "Available: 7, 6, 5, 4, 3\n")
	assert.NotContains(t, got, "2, 1")
}
