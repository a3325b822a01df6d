// Package watcher re-ingests the documentation corpus when files under
// the watched root change.
//
// Events are debounced: a burst of filesystem activity (editor save,
// git checkout) triggers a single rebuild after the quiet period.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/traceleaf/docrag/internal/logger"
)

// DefaultDebounce is the quiet period after the last relevant event
// before a rebuild is triggered.
const DefaultDebounce = 2 * time.Second

// relevantExtensions are the document types worth rebuilding for.
var relevantExtensions = map[string]struct{}{
	".txt":  {},
	".md":   {},
	".adoc": {},
}

// Watcher triggers a callback when documents under root change.
type Watcher struct {
	root     string
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher over the given documentation root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the root recursively and invokes onChange after each
// debounced burst of document changes. It blocks until ctx is done.
// The first onChange error stops the watch and is returned.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := addRecursive(fsw, w.root); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			// New directories must be added so nested changes are seen.
			if event.Op.Has(fsnotify.Create) {
				if err := addRecursive(fsw, event.Name); err != nil {
					logger.Warn("watch %s: %v", event.Name, err)
				}
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("change detected: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether the event should trigger a rebuild: a
// create, write, remove or rename of a document file. Chmod-only
// events are noise.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	_, ok := relevantExtensions[ext]
	return ok
}

// addRecursive registers path and every directory below it. Non-directory
// paths are ignored.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch root: %w", err)
			}
			// The path may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
