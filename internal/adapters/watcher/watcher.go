// Package watcher reports changes to the site file using fsnotify.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/itinerary/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultWindow is the quiet period after the last write before a change is reported.
const DefaultWindow = 200 * time.Millisecond

var _ ports.FileWatcher = (*Watcher)(nil)

// Watcher implements ports.FileWatcher.
type Watcher struct {
	window time.Duration
	logger ports.Logger
}

// New creates a Watcher.
func New(logger ports.Logger) *Watcher {
	return &Watcher{window: DefaultWindow, logger: logger}
}

// Watch blocks until ctx is done. The parent directory is watched rather than the file so
// editors that replace the file on save keep being observed.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve watched path"), "path", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() {
		_ = fsw.Close()
	}()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", filepath.Dir(abs))
	}

	debouncer := NewDebouncer(w.window, func([]string) { onChange() })
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debouncer.Add(event.Name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watcher: file system error: " + err.Error())
			}
		}
	}
}
