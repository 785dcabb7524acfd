// Package watch reloads the task collection when its store file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
)

// DefaultDebounce coalesces the burst of events produced by one atomic write.
const DefaultDebounce = 100 * time.Millisecond

// Watcher follows external edits to a file-backed store, such as a second
// tasklist process, and rehydrates the live state from them.
// Fields are ordered to minimize memory padding.
type Watcher struct {
	watcher  *fsnotify.Watcher
	adapter  *persist.Adapter
	store    *state.Store
	logger   domain.Logger
	timer    *time.Timer
	path     string
	seed     domain.Tasks
	debounce time.Duration
	mu       sync.Mutex
}

// New creates a watcher for the store file at path.
// When the stored value disappears the state falls back to seed.
func New(path string, adapter *persist.Adapter, store *state.Store, seed domain.Tasks, logger domain.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Watcher{
		watcher:  watcher,
		adapter:  adapter,
		store:    store,
		logger:   logger,
		path:     filepath.Clean(path),
		seed:     seed,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce overrides the event coalescing window. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start watches until ctx is done or Stop is called. It blocks; run it in a
// goroutine. The file's directory is watched because writes replace the file
// by renaming over it.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watch", "watching "+w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch", fmt.Sprintf("watcher error: %v", err))

		case <-ctx.Done():
			w.stopTimer()
			return nil
		}
	}
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.stopTimer()
	return w.watcher.Close()
}

// handleEvent schedules a reload for events on the store file.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.Reload(ctx) })
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Reload reads the stored collection and rehydrates the state with it.
// Values this process wrote itself, or that match the live state, are ignored.
// Nothing is replaced while the live state holds changes not yet written, or
// when a write landed during the read, since the file is then outdated.
func (w *Watcher) Reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	gen := w.adapter.Generation()
	tasks, ok, err := w.adapter.Load(ctx)
	if err != nil {
		w.logger.Warn("watch", fmt.Sprintf("reload skipped: %v", err))
		return
	}
	if !ok {
		tasks = w.seed
	}
	if w.adapter.Synced(tasks) {
		return
	}

	replaced := w.store.RehydrateIf(tasks, func(cur state.State) bool {
		return !cur.Tasks.Equal(tasks) &&
			w.adapter.Generation() == gen &&
			w.adapter.Synced(cur.Tasks)
	})
	if !replaced {
		w.logger.Debug("watch", "reload skipped: state is current or has unwritten changes")
		return
	}
	w.adapter.MarkSynced(tasks)
	w.logger.Info("watch", fmt.Sprintf("store changed externally, reloaded %d tasks", tasks.Len()))
}
