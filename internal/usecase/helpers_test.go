package usecase

import (
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
	"github.com/runoshun/tasklist/internal/testutil"
)

// newTestStore returns a store over tasks with deterministic ids "task-1", "task-2", ...
func newTestStore(tasks domain.Tasks, opts ...domain.TaskReducerOption) *state.Store {
	opts = append([]domain.TaskReducerOption{domain.WithIDGenerator(&testutil.SequentialIDs{})}, opts...)
	return state.New(domain.NewTaskReducer(opts...), tasks)
}
