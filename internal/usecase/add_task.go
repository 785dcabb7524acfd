// Package usecase contains the application use cases.
package usecase

import (
	"context"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Text string // Task text, stored as given
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Task domain.Task // The appended task with its generated id
}

// AddTask is the use case for appending a task.
type AddTask struct {
	store *state.Store
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store *state.Store) *AddTask {
	return &AddTask{
		store: store,
	}
}

// Execute dispatches an AddTask intent and returns the new task.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	if err := uc.store.Dispatch(domain.AddTask{Text: in.Text}); err != nil {
		return nil, err
	}
	tasks := uc.store.State().Tasks
	return &AddTaskOutput{Task: tasks.At(tasks.Len() - 1)}, nil
}
