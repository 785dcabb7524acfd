// Package state holds the live application state and applies intents to it.
package state

import (
	"sync"

	"github.com/runoshun/tasklist/internal/domain"
)

// State is a snapshot of the application state.
type State struct {
	Tasks  domain.Tasks
	Filter domain.StatusFilter
}

// Visible returns the tasks shown under the current filter.
func (s State) Visible() []domain.Task {
	return domain.VisibleTasks(s.Tasks, s.Filter)
}

// Change is delivered to subscribers after every committed transition.
type Change struct {
	State        State
	Intent       domain.Intent // nil for rehydration
	TasksChanged bool          // Task slice differs from the previous state
	Rehydrated   bool          // Tasks were replaced from storage, not by an intent
}

// Listener receives committed changes.
type Listener func(Change)

// Store owns the task collection and the status filter.
// Dispatch is the only way views change state.
type Store struct {
	reducer   *domain.TaskReducer
	listeners map[int]Listener
	state     State
	nextSubID int
	mu        sync.RWMutex
}

// New creates a Store seeded with tasks and the "all" filter.
func New(reducer *domain.TaskReducer, tasks domain.Tasks) *Store {
	if reducer == nil {
		reducer = domain.NewTaskReducer()
	}
	return &Store{
		reducer:   reducer,
		listeners: make(map[int]Listener),
		state:     State{Tasks: tasks, Filter: domain.FilterAll},
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Visible returns the visible tasks for the current state.
func (s *Store) Visible() []domain.Task {
	return s.State().Visible()
}

// Dispatch applies an intent synchronously and notifies subscribers.
// On error the state is left untouched and nobody is notified.
func (s *Store) Dispatch(in domain.Intent) error {
	s.mu.Lock()
	prev := s.state
	next := prev
	var err error
	switch in := in.(type) {
	case domain.SetFilter:
		next.Filter, err = domain.ReduceFilter(prev.Filter, in)
	default:
		next.Tasks, err = s.reducer.Reduce(prev.Tasks, in)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	change := Change{
		State:        next,
		Intent:       in,
		TasksChanged: !prev.Tasks.Equal(next.Tasks),
	}
	for _, fn := range listeners {
		fn(change)
	}
	return nil
}

// Rehydrate replaces the task collection with one loaded from storage.
// The filter is kept.
func (s *Store) Rehydrate(tasks domain.Tasks) {
	s.RehydrateIf(tasks, nil)
}

// RehydrateIf is Rehydrate guarded by ok, which is called with the current
// state while no intent can be applied. It reports whether tasks were replaced.
func (s *Store) RehydrateIf(tasks domain.Tasks, ok func(State) bool) bool {
	s.mu.Lock()
	prev := s.state
	if ok != nil && !ok(prev) {
		s.mu.Unlock()
		return false
	}
	s.state.Tasks = tasks
	next := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	change := Change{
		State:        next,
		TasksChanged: !prev.Tasks.Equal(next.Tasks),
		Rehydrated:   true,
	}
	for _, fn := range listeners {
		fn(change)
	}
	return true
}

// Subscribe registers fn for future changes and returns a function removing it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshotListeners returns listeners in subscription order. Caller holds mu.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextSubID; id++ {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
