// Package watch notifies about changes to a single file. It watches the
// parent directory so that editors which replace the file on save are
// handled.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ariel-frischer/changelog-reader/internal/logging"
)

// DefaultDebounce coalesces bursts of events from a single save.
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher reports changes to one file.
type FileWatcher struct {
	path     string
	debounce time.Duration
	log      logrus.FieldLogger
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period after the last event before a change
// is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watcher errors.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *FileWatcher) {
		w.log = log
	}
}

// New creates a FileWatcher for path. The parent directory must exist.
func New(path string, opts ...Option) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &FileWatcher{
		path:     abs,
		debounce: DefaultDebounce,
		log:      logging.Discard(),
		watcher:  watcher,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Watch calls onChange after each settled change to the file until ctx is
// cancelled or the watcher is closed. It returns nil on cancellation.
func (w *FileWatcher) Watch(ctx context.Context, onChange func()) error {
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.WithField("op", event.Op.String()).Debug("changelog changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// relevant reports whether event touches the watched file in a way that may
// change its content.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
