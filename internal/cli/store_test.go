package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
)

func TestExportCommand_JSON(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	stdout, _, err := execute(newExportCommand(c))

	require.NoError(t, err)
	tasks, err := persist.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.True(t, tasks.Equal(domain.DefaultSeed()))
}

func TestExportCommand_YAMLToFile(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())
	path := filepath.Join(t.TempDir(), "tasks.yaml")

	stdout, stderr, err := execute(newExportCommand(c), "--format", "yaml", "-o", path)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Exported 5 tasks")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "text: Learn HTML and CSS")
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	_, _, err := execute(newExportCommand(c), "--format", "csv")

	assert.ErrorIs(t, err, persist.ErrUnknownFormat)
}

func TestImportCommand_File(t *testing.T) {
	c, _ := newTestContainer(t, domain.Tasks{})
	path := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- one\n- text: two\n  completed: true\n"), 0o600))

	stdout, _, err := execute(newImportCommand(c), path)

	require.NoError(t, err)
	assert.Equal(t, "Imported 2 tasks\n", stdout)
	tasks := c.Store.State().Tasks
	require.Equal(t, 2, tasks.Len())
	assert.True(t, tasks.At(1).Completed)
}

func TestImportCommand_Stdin(t *testing.T) {
	c, _ := newTestContainer(t, domain.Tasks{})
	cmd := newImportCommand(c)
	cmd.SetIn(strings.NewReader(`["from stdin"]`))

	stdout, _, err := execute(cmd, "-")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 1 tasks")
	assert.Equal(t, "from stdin", c.Store.State().Tasks.At(0).Text)
}

func TestImportCommand_MissingFile(t *testing.T) {
	c, _ := newTestContainer(t, domain.Tasks{})

	_, _, err := execute(newImportCommand(c), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResetCommand(t *testing.T) {
	c, kv := newTestContainer(t, domain.NewTasks(domain.Task{ID: "x", Text: "mine"}))
	_, _, err := execute(newAddCommand(c), "another")
	require.NoError(t, err)
	require.NoError(t, c.Adapter.Flush(context.Background()))
	require.NotEmpty(t, kv.Value(domain.DefaultTasksKey))

	stdout, _, err := execute(newResetCommand(c))

	require.NoError(t, err)
	assert.Equal(t, "Reset to 5 seed tasks\n", stdout)
	assert.True(t, c.Store.State().Tasks.Equal(domain.DefaultSeed()))
	require.NoError(t, c.Adapter.Flush(context.Background()))
	assert.Empty(t, kv.Value(domain.DefaultTasksKey))
}
