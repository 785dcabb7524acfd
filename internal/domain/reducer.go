package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator produces task identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// TaskReducer computes the next task collection from an intent.
// It never modifies the collection it receives.
type TaskReducer struct {
	ids          IDGenerator
	validateText bool
}

// TaskReducerOption configures a TaskReducer.
type TaskReducerOption func(*TaskReducer)

// WithIDGenerator overrides the id generator. A nil generator is ignored.
func WithIDGenerator(g IDGenerator) TaskReducerOption {
	return func(r *TaskReducer) {
		if g != nil {
			r.ids = g
		}
	}
}

// WithTextValidation rejects AddTask intents with blank text.
func WithTextValidation(enabled bool) TaskReducerOption {
	return func(r *TaskReducer) {
		r.validateText = enabled
	}
}

// NewTaskReducer creates a TaskReducer using random UUIDs for new tasks.
func NewTaskReducer(opts ...TaskReducerOption) *TaskReducer {
	r := &TaskReducer{ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce applies a task intent to prev and returns the resulting collection.
// On error prev is returned unchanged.
func (r *TaskReducer) Reduce(prev Tasks, in Intent) (Tasks, error) {
	switch in := in.(type) {
	case AddTask:
		return r.add(prev, in)
	case DeleteTask:
		i := prev.Index(in.ID)
		if i < 0 {
			return prev, nil
		}
		return prev.without(i), nil
	case ToggleCompleted:
		i := prev.Index(in.ID)
		if i < 0 {
			return prev, nil
		}
		task := prev.At(i)
		task.Completed = !task.Completed
		return prev.replaced(i, task), nil
	default:
		return prev, fmt.Errorf("%w: %T", ErrUnknownIntent, in)
	}
}

// ReduceValue is Reduce for a prior state of unknown shape, such as a value
// decoded from storage. Malformed input is treated as an empty collection.
func (r *TaskReducer) ReduceValue(prev any, in Intent) (Tasks, error) {
	tasks, _ := CoerceTasks(prev)
	return r.Reduce(tasks, in)
}

func (r *TaskReducer) add(prev Tasks, in AddTask) (Tasks, error) {
	if r.validateText && strings.TrimSpace(in.Text) == "" {
		return prev, ErrEmptyText
	}
	id := in.ID
	if id == "" || prev.Index(id) >= 0 {
		id = r.freshID(prev)
	}
	return prev.appended(Task{ID: id, Text: in.Text}), nil
}

// maxIDAttempts bounds retries against a generator that keeps colliding.
const maxIDAttempts = 8

// freshID returns a generated id not present in tasks.
func (r *TaskReducer) freshID(tasks Tasks) string {
	for i := 0; i < maxIDAttempts; i++ {
		id := r.ids.NewID()
		if id != "" && tasks.Index(id) < 0 {
			return id
		}
	}
	for {
		id := uuid.NewString()
		if tasks.Index(id) < 0 {
			return id
		}
	}
}
