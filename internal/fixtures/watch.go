package fixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher marks the fixture set dirty when a watched fixture file changes.
// Reloading is left to the caller, which checks Dirty between inputs.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	dirty   atomic.Bool
}

// NewWatcher watches the given directories and files until ctx is done.
// Paths that do not exist are skipped.
func NewWatcher(ctx context.Context, logger *slog.Logger, paths ...string) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := fw.Add(p); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	w := &Watcher{watcher: fw, logger: logger}
	go w.loop(ctx)
	return w, nil
}

// Dirty reports whether a fixture changed since the last call and clears
// the flag.
func (w *Watcher) Dirty() bool {
	return w.dirty.Swap(false)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !Supported(event.Name) {
				continue
			}
			w.logger.Debug("fixture changed", "path", event.Name, "op", event.Op.String())
			w.dirty.Store(true)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fixture watcher error", "error", err)
		}
	}
}
