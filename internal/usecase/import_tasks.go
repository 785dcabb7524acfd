package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
)

// ImportTasksInput contains the parameters for importing tasks.
type ImportTasksInput struct {
	Source io.Reader // YAML or JSON list of texts or {id, text, completed} records
}

// ImportTasksOutput contains the result of importing tasks.
type ImportTasksOutput struct {
	Added   []domain.Task // Appended tasks, in file order
	Skipped int           // Entries rejected by the reducer (e.g. blank text)
}

// ImportTasks is the use case for appending tasks read from a file.
type ImportTasks struct {
	store  *state.Store
	logger domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(store *state.Store, logger domain.Logger) *ImportTasks {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ImportTasks{
		store:  store,
		logger: logger,
	}
}

// Execute appends every entry through the AddTask intent.
// Completed entries are toggled right after being added.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	entries, err := persist.ReadEntries(in.Source)
	if err != nil {
		return nil, err
	}

	out := &ImportTasksOutput{}
	for i, e := range entries {
		if err := uc.store.Dispatch(domain.AddTask{Text: e.Text, ID: e.ID}); err != nil {
			uc.logger.Warn("import", fmt.Sprintf("entry %d skipped: %v", i+1, err))
			out.Skipped++
			continue
		}
		tasks := uc.store.State().Tasks
		task := tasks.At(tasks.Len() - 1)
		if e.Completed {
			if err := uc.store.Dispatch(domain.ToggleCompleted{ID: task.ID}); err != nil {
				return nil, err
			}
			task.Completed = true
		}
		out.Added = append(out.Added, task)
	}
	return out, nil
}
