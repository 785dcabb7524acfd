package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/state"
	"github.com/runoshun/tasklist/internal/usecase/shared"
)

// ToggleTaskInput contains the parameters for toggling a task.
type ToggleTaskInput struct {
	Ref string // Full id or unique id prefix
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct {
	Task  domain.Task // The task after toggling (zero when not found)
	Found bool        // False when no task matched; nothing changed
}

// ToggleTask is the use case for flipping a task's completion state.
type ToggleTask struct {
	store *state.Store
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(store *state.Store) *ToggleTask {
	return &ToggleTask{
		store: store,
	}
}

// Execute toggles the referenced task. An unknown reference is a no-op.
func (uc *ToggleTask) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	id, err := shared.ResolveTaskID(uc.store.State().Tasks, in.Ref)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return &ToggleTaskOutput{}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := uc.store.Dispatch(domain.ToggleCompleted{ID: id}); err != nil {
		return nil, err
	}
	task, found := uc.store.State().Tasks.Find(id)
	return &ToggleTaskOutput{Task: task, Found: found}, nil
}
