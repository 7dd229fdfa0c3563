package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

## [Unreleased]

### Added
- Watch mode

## [1.2.0] - 2024-03-01

### Fixed
- Parser crash on empty sections

## [1.1.0] - 2024-01-15

### Added
- First release
`

// writeChangelog writes content to a CHANGELOG.md in a fresh directory.
func writeChangelog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the command tree with args. getenv sees only env.
func execute(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd(func(key string) string { return env[key] })
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
