package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is
// reported. Copies and editor saves arrive as bursts of writes, and
// ingesting a half-written document would index garbage.
const DefaultSettle = 2 * time.Second

// Ensure Watcher implements the interface.
var _ driven.FolderWatcher = (*Watcher)(nil)

// Watcher reports settled file creations and writes in one folder.
type Watcher struct {
	settle time.Duration
}

// NewWatcher creates a watcher with the default settle window.
func NewWatcher() *Watcher {
	return &Watcher{settle: DefaultSettle}
}

// NewWatcherWithSettle creates a watcher with a custom settle window.
// Non-positive values fall back to the default.
func NewWatcherWithSettle(settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{settle: settle}
}

// Watch emits one event per settled file matching pattern until ctx is
// cancelled.
func (w *Watcher) Watch(ctx context.Context, dir, pattern string) (<-chan driven.FileEvent, <-chan error, error) {
	if err := NewScanner().Validate(dir); err != nil {
		return nil, nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	events := make(chan driven.FileEvent)
	errs := make(chan error, 1)

	go w.run(ctx, fsw, pattern, events, errs)

	return events, errs, nil
}

// run pumps raw notifications into settled per-file events.
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, pattern string, events chan<- driven.FileEvent, errs chan<- error) {
	defer close(events)
	defer close(errs)
	defer fsw.Close()

	// pending maps a path to the moment it counts as settled. The
	// deadline moves on every new write.
	pending := make(map[string]time.Time)

	interval := w.settle / 2
	if interval <= 0 {
		interval = w.settle
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if path, accepted := w.accept(event, pattern); accepted {
				pending[path] = time.Now().Add(w.settle)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			errs <- err
			return

		case now := <-ticker.C:
			for path, deadline := range pending {
				if now.Before(deadline) {
					continue
				}
				delete(pending, path)
				logger.Debug("[watch] settled %s", filepath.Base(path))
				select {
				case events <- driven.FileEvent{Path: path}:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// accept decides whether a raw notification is a candidate ingestion.
// Only creations and writes of visible, pattern-matching regular files
// qualify.
func (w *Watcher) accept(event fsnotify.Event, pattern string) (string, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return "", false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}

	matched, err := doublestar.Match(pattern, name)
	if err != nil || !matched {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}

	return event.Name, true
}
