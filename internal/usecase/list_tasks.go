package usecase

import (
	"context"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter string // "all", "active" or "completed"; empty means all
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks   []domain.Task       // Tasks visible under Filter, in order
	Summary domain.Summary      // Counts over the whole collection
	Filter  domain.StatusFilter // The applied filter
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store *state.Store
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store *state.Store) *ListTasks {
	return &ListTasks{
		store: store,
	}
}

// Execute projects the current collection through the requested filter.
// The store's own filter is not changed.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	filter := domain.FilterAll
	if in.Filter != "" {
		f, err := domain.ParseStatusFilter(in.Filter)
		if err != nil {
			return nil, err
		}
		filter = f
	}

	tasks := uc.store.State().Tasks
	return &ListTasksOutput{
		Tasks:   domain.VisibleTasks(tasks, filter),
		Summary: domain.Summarize(tasks),
		Filter:  filter,
	}, nil
}
