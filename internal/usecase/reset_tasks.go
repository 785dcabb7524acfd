package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
)

// ResetTasksInput contains the parameters for resetting the list.
type ResetTasksInput struct{}

// ResetTasksOutput contains the result of resetting the list.
type ResetTasksOutput struct {
	Tasks domain.Tasks // The seed now in effect
}

// ResetTasks removes the stored collection and returns the live state to the seed.
type ResetTasks struct {
	store   *state.Store
	adapter *persist.Adapter
	seed    domain.Tasks
}

// NewResetTasks creates a new ResetTasks use case.
func NewResetTasks(store *state.Store, adapter *persist.Adapter, seed domain.Tasks) *ResetTasks {
	return &ResetTasks{
		store:   store,
		adapter: adapter,
		seed:    seed,
	}
}

// Execute waits for queued writes, clears the stored value and rehydrates the
// seed. The seed is not written, so the next start seeds again.
func (uc *ResetTasks) Execute(ctx context.Context, _ ResetTasksInput) (*ResetTasksOutput, error) {
	if err := uc.adapter.Flush(ctx); err != nil {
		return nil, fmt.Errorf("flush pending writes: %w", err)
	}
	if err := uc.adapter.Clear(ctx); err != nil {
		return nil, err
	}
	uc.store.Rehydrate(uc.seed)
	uc.adapter.MarkSynced(uc.seed)
	return &ResetTasksOutput{Tasks: uc.seed}, nil
}
