package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the changelog-reader CLI.
// These templates ensure consistent, actionable error messages.

// VersionNotFound creates an error when the requested version has no entry.
func VersionNotFound(version string, available []string, err error) *CLIError {
	remediation := []string{"List available versions with: changelog-reader versions"}
	if len(available) > 0 {
		shown := available
		if len(shown) > 5 {
			shown = shown[:5]
		}
		remediation = append(remediation, "Available: "+strings.Join(shown, ", "))
	}
	if version != "" {
		remediation = append(remediation, "Version matching is exact and case-insensitive (e.g., 1.2.0, not v1.2.0)")
	}
	return &CLIError{
		Category:    NotFound,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// EmptyChangelog creates an error for a changelog without content or entries.
func EmptyChangelog(err error) *CLIError {
	return &CLIError{
		Category: NotFound,
		Message:  err.Error(),
		Remediation: []string{
			"Version headings must look like: ## [1.2.0] - 2024-03-01",
			"See https://keepachangelog.com for the expected format",
		},
		Err: err,
	}
}

// ValidationFailed creates an error for a changelog that failed validation
// at level error.
func ValidationFailed(err error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  err.Error(),
		Remediation: []string{
			"Fix the reported entries, or lower the level with --validation-level warn",
			"Limit the check to recent entries with --validation-depth",
		},
		Err: err,
	}
}

// InvalidRepoURL creates an error for a repository URL that is not host/owner/repo.
func InvalidRepoURL(err error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  err.Error(),
		Usage:    "changelog-reader --repo-url https://github.com/<owner>/<repo>",
		Remediation: []string{
			"The repository URL must have exactly a host, an owner and a repository name",
		},
		Err: err,
	}
}

// FetchFailed creates an error for transport, TLS or authorization failures.
func FetchFailed(err error) *CLIError {
	return &CLIError{
		Category: Fetch,
		Message:  err.Error(),
		Remediation: []string{
			"Check your network connection and the URL",
			"For private repositories pass --token or set GITHUB_TOKEN",
			"Self-signed certificates need --skip-certificate-check",
		},
		Err: err,
	}
}

// ConfigFailed creates an error for config files that cannot be used.
func ConfigFailed(err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  err.Error(),
		Remediation: []string{
			"Config files must be JSON (.changelog-reader.json)",
			"Create a template with: changelog-reader config init",
		},
		Err: err,
	}
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'changelog-reader <command> --help' to see valid options",
	)
}

// GitNotRepository creates an error when a git lookup is needed outside a repository.
func GitNotRepository(err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  err.Error(),
		Remediation: []string{
			"--from-remote and --local-ref must run inside a git repository",
			"Or pass --repo-url / --path explicitly",
		},
		Err: err,
	}
}

// FileNotWritable creates an error when the output file cannot be written.
func FileNotWritable(err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  err.Error(),
		Remediation: []string{
			"Ensure the parent directory of --output-file exists and is writable",
		},
		Err: err,
	}
}
