package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
)

// Adapter reads and writes the task collection in a key-value store.
// It is the only component that touches the durable store.
// Fields are ordered to minimize memory padding.
type Adapter struct {
	kv       domain.KeyValueStore
	logger   domain.Logger
	pending  *domain.Tasks
	synced   *domain.Tasks
	writeErr error
	wake     chan struct{}
	flushes  chan chan struct{}
	stop     chan struct{}
	done     chan struct{}
	unsub    func()
	key      string
	gen      uint64
	mu       sync.Mutex
	once     sync.Once
	started  bool
}

// New creates an Adapter storing the collection under key.
func New(kv domain.KeyValueStore, key string, logger domain.Logger) *Adapter {
	if key == "" {
		key = domain.DefaultTasksKey
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Adapter{
		kv:      kv,
		key:     key,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Key returns the key the collection is stored under.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the persisted collection.
// The second result is false when nothing usable is stored, in which case the
// caller falls back to its seed. A value of the wrong shape is recovered as an
// empty (or partially salvaged) collection and reported as found. Backend
// failures, such as a wrong encryption key, are returned as errors so the
// stored value is never replaced by the seed.
func (a *Adapter) Load(ctx context.Context) (domain.Tasks, bool, error) {
	data, err := a.kv.Get(ctx, a.key)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		a.logger.Debug("persist", fmt.Sprintf("no stored value under %q", a.key))
		return domain.Tasks{}, false, nil
	case errors.Is(err, domain.ErrCorruptStore):
		a.logger.Warn("persist", fmt.Sprintf("ignoring unreadable store: %v", err))
		return domain.Tasks{}, false, nil
	case err != nil:
		a.logger.Error("persist", fmt.Sprintf("read %q: %v", a.key, err))
		return domain.Tasks{}, false, fmt.Errorf("read %q: %w", a.key, err)
	}

	tasks, err := Decode(data)
	switch {
	case err == nil:
		a.logger.Debug("persist", fmt.Sprintf("loaded %d tasks", tasks.Len()))
		return tasks, true, nil
	case errors.Is(err, domain.ErrMalformedState):
		a.logger.Warn("persist", fmt.Sprintf("recovered %d tasks from malformed value: %v", tasks.Len(), err))
		return tasks, true, nil
	default:
		a.logger.Warn("persist", fmt.Sprintf("ignoring stored value: %v", err))
		return domain.Tasks{}, false, nil
	}
}

// LoadOrSeed returns the persisted collection, or seed when nothing usable is
// stored. The result is recorded as in sync with the store.
func (a *Adapter) LoadOrSeed(ctx context.Context, seed domain.Tasks) (domain.Tasks, error) {
	tasks, ok, err := a.Load(ctx)
	if err != nil {
		return domain.Tasks{}, err
	}
	if !ok {
		tasks = seed
	}
	a.MarkSynced(tasks)
	return tasks, nil
}

// Save serializes tasks and replaces the stored value.
func (a *Adapter) Save(ctx context.Context, tasks domain.Tasks) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("write %q: %w", a.key, err)
	}
	a.mu.Lock()
	a.synced = &tasks
	a.gen++
	a.mu.Unlock()
	return nil
}

// Synced reports whether tasks equals the collection this adapter last read
// from or wrote to the store. Watchers use it to ignore their own writes.
func (a *Adapter) Synced(tasks domain.Tasks) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.synced != nil && a.synced.Equal(tasks)
}

// MarkSynced records tasks as matching the store, after a reload.
func (a *Adapter) MarkSynced(tasks domain.Tasks) {
	a.mu.Lock()
	a.synced = &tasks
	a.mu.Unlock()
}

// Generation counts successful writes. A reader that sees it change while
// loading has read a value that may already be outdated.
func (a *Adapter) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// Clear removes the stored value so the next start uses the seed.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.kv.Remove(ctx, a.key); err != nil {
		return fmt.Errorf("remove %q: %w", a.key, err)
	}
	return nil
}

// Attach subscribes to store and writes every task change through in the
// background. Filter changes and rehydrations are not written.
// Attach may be called once.
func (a *Adapter) Attach(store *state.Store) {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	a.unsub = store.Subscribe(func(c state.Change) {
		if c.Rehydrated || !c.TasksChanged {
			return
		}
		a.enqueue(c.State.Tasks)
	})
	go a.run()
}

// Flush blocks until every change queued before the call has been written.
// It returns the first write failure since the previous Flush or Close.
func (a *Adapter) Flush(ctx context.Context) error {
	if !a.isStarted() {
		return nil
	}
	reply := make(chan struct{})
	select {
	case a.flushes <- reply:
	case <-a.done:
		return a.takeWriteErr()
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return a.takeWriteErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the background writer after writing any pending change, and
// reports a write failure not yet returned by Flush.
// The underlying store is not closed.
func (a *Adapter) Close() error {
	a.once.Do(func() {
		if !a.isStarted() {
			return
		}
		if a.unsub != nil {
			a.unsub()
		}
		close(a.stop)
		<-a.done
	})
	return a.takeWriteErr()
}

func (a *Adapter) takeWriteErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.writeErr
	a.writeErr = nil
	return err
}

func (a *Adapter) isStarted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

// enqueue replaces any pending snapshot; only the latest one is written.
func (a *Adapter) enqueue(tasks domain.Tasks) {
	a.mu.Lock()
	a.pending = &tasks
	a.mu.Unlock()
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Adapter) run() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.writePending()
		case reply := <-a.flushes:
			a.writePending()
			close(reply)
		case <-a.stop:
			a.writePending()
			return
		}
	}
}

func (a *Adapter) writePending() {
	a.mu.Lock()
	p := a.pending
	a.pending = nil
	a.mu.Unlock()
	if p == nil {
		return
	}
	if err := a.Save(context.Background(), *p); err != nil {
		a.logger.Error("persist", err.Error())
		a.mu.Lock()
		if a.writeErr == nil {
			a.writeErr = err
		}
		a.mu.Unlock()
		return
	}
	a.logger.Debug("persist", fmt.Sprintf("saved %d tasks", p.Len()))
}
