package usecase

import (
	"context"
	"io"

	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Writer io.Writer
	Format string // persist.FormatJSON or persist.FormatYAML
}

// ExportTasksOutput contains the result of exporting tasks.
type ExportTasksOutput struct {
	Count int // Number of exported tasks
}

// ExportTasks is the use case for writing the whole collection out.
type ExportTasks struct {
	store *state.Store
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store *state.Store) *ExportTasks {
	return &ExportTasks{
		store: store,
	}
}

// Execute writes every task, ignoring the current filter.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	tasks := uc.store.State().Tasks
	if err := persist.Export(in.Writer, tasks, in.Format); err != nil {
		return nil, err
	}
	return &ExportTasksOutput{Count: tasks.Len()}, nil
}
