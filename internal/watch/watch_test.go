package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("## [1.0.0]\n"), 0o644))

	w, err := New(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() { changes <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(path, []byte("## [1.1.0]\n"), 0o644))

	select {
	case <-changes:
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	w, err := New(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var calls int
	go func() {
		_ = os.WriteFile(filepath.Join(dir, "README.md"), []byte("y"), 0o644)
	}()

	require.NoError(t, w.Watch(ctx, func() { calls++ }))
	assert.Zero(t, calls)
}

func TestFileWatcher_Relevant(t *testing.T) {
	w := &FileWatcher{path: "/repo/CHANGELOG.md"}

	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"write":      {event: fsnotify.Event{Name: "/repo/CHANGELOG.md", Op: fsnotify.Write}, want: true},
		"create":     {event: fsnotify.Event{Name: "/repo/CHANGELOG.md", Op: fsnotify.Create}, want: true},
		"rename":     {event: fsnotify.Event{Name: "/repo/CHANGELOG.md", Op: fsnotify.Rename}, want: true},
		"chmod":      {event: fsnotify.Event{Name: "/repo/CHANGELOG.md", Op: fsnotify.Chmod}, want: false},
		"other file": {event: fsnotify.Event{Name: "/repo/README.md", Op: fsnotify.Write}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "CHANGELOG.md"))
	require.Error(t, err)
}

func TestFileWatcher_CloseTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "CHANGELOG.md"))
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
