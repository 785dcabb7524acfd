package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/runoshun/tasklist/internal/app"
	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
	"github.com/runoshun/tasklist/internal/testutil"
)

// newTestContainer creates an opened app.Container over an in-memory store
// holding tasks. Ids of new tasks are "task-1", "task-2", ...
func newTestContainer(t *testing.T, tasks domain.Tasks) (*app.Container, *testutil.MockKeyValueStore) {
	t.Helper()
	kv := testutil.NewMockKeyValueStore()
	reducer := domain.NewTaskReducer(domain.WithIDGenerator(&testutil.SequentialIDs{}))
	store := state.New(reducer, tasks)
	adapter := persist.New(kv, domain.DefaultTasksKey, nil)
	adapter.Attach(store)

	c := app.NewWithDeps(app.Config{Backend: domain.BackendMemory}, kv, store, adapter, domain.DefaultSeed(), nil)
	t.Cleanup(func() { _ = c.Close() })
	return c, kv
}

// execute runs cmd with args and returns stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
