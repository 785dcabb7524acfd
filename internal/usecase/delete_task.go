package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
	"github.com/runoshun/tasklist/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Ref string // Full id or unique id prefix
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task  domain.Task // The removed task (zero when not found)
	Found bool        // False when no task matched; nothing changed
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store *state.Store
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store *state.Store) *DeleteTask {
	return &DeleteTask{
		store: store,
	}
}

// Execute removes the referenced task. An unknown reference is a no-op.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	tasks := uc.store.State().Tasks
	id, err := shared.ResolveTaskID(tasks, in.Ref)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return &DeleteTaskOutput{}, nil
	}
	if err != nil {
		return nil, err
	}

	task, _ := tasks.Find(id)
	if err := uc.store.Dispatch(domain.DeleteTask{ID: id}); err != nil {
		return nil, err
	}
	return &DeleteTaskOutput{Task: task, Found: true}, nil
}
