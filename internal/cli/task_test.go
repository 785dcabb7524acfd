package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
)

// =============================================================================
// Add Command Tests
// =============================================================================

func TestAddCommand(t *testing.T) {
	c, kv := newTestContainer(t, domain.DefaultSeed())

	stdout, _, err := execute(newAddCommand(c), "Buy", "milk")

	require.NoError(t, err)
	assert.Equal(t, "Added task-1: Buy milk\n", stdout)
	tasks := c.Store.State().Tasks
	assert.Equal(t, domain.Task{ID: "task-1", Text: "Buy milk"}, tasks.At(tasks.Len()-1))

	require.NoError(t, c.Adapter.Flush(context.Background()))
	stored, err := persist.Decode([]byte(kv.Value(domain.DefaultTasksKey)))
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Len())
}

func TestAddCommand_RequiresText(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	_, _, err := execute(newAddCommand(c))

	assert.Error(t, err)
	assert.Equal(t, 5, c.Store.State().Tasks.Len())
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestListCommand(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	stdout, _, err := execute(newListCommand(c))

	require.NoError(t, err)
	assert.Contains(t, stdout, "ID  STATUS     TEXT")
	assert.Contains(t, stdout, "0   completed  Learn HTML and CSS")
	assert.Contains(t, stdout, "2   active     Master React")
	assert.Contains(t, stdout, "3 active, 2 completed")
}

func TestListCommand_Filter(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	stdout, _, err := execute(newListCommand(c), "--filter", "completed")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Learn HTML and CSS")
	assert.NotContains(t, stdout, "Master React")
	assert.Equal(t, domain.FilterAll, c.Store.State().Filter)
}

func TestListCommand_InvalidFilter(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	_, _, err := execute(newListCommand(c), "--filter", "done")

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestListCommand_Empty(t *testing.T) {
	c, _ := newTestContainer(t, domain.Tasks{})

	stdout, _, err := execute(newListCommand(c))

	require.NoError(t, err)
	assert.Contains(t, stdout, "No tasks.")
}

// =============================================================================
// Toggle / Rm Command Tests
// =============================================================================

func TestToggleCommand(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	stdout, _, err := execute(newToggleCommand(c), "2")
	require.NoError(t, err)
	assert.Equal(t, "Completed 2: Master React\n", stdout)

	stdout, _, err = execute(newToggleCommand(c), "2")
	require.NoError(t, err)
	assert.Equal(t, "Reopened 2: Master React\n", stdout)
}

func TestToggleCommand_Prefix(t *testing.T) {
	c, _ := newTestContainer(t, domain.NewTasks(domain.Task{ID: "7c9e6679", Text: "prefix"}))

	stdout, _, err := execute(newToggleCommand(c), "7c9")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Completed 7c9e6679")
}

func TestToggleCommand_UnknownIsNoop(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	stdout, stderr, err := execute(newToggleCommand(c), "nope")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `No task matches "nope"`)
	assert.True(t, c.Store.State().Tasks.Equal(domain.DefaultSeed()))
}

func TestToggleCommand_Ambiguous(t *testing.T) {
	c, _ := newTestContainer(t, domain.NewTasks(domain.Task{ID: "ab1"}, domain.Task{ID: "ab2"}))

	_, _, err := execute(newToggleCommand(c), "ab")

	assert.ErrorIs(t, err, domain.ErrAmbiguousID)
}

func TestRmCommand(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	stdout, _, err := execute(newRmCommand(c), "3")

	require.NoError(t, err)
	assert.Equal(t, "Deleted 3: Discover Redux\n", stdout)
	assert.Equal(t, []string{"0", "1", "2", "4"}, c.Store.State().Tasks.IDs())
}

func TestRmCommand_UnknownIsNoop(t *testing.T) {
	c, _ := newTestContainer(t, domain.DefaultSeed())

	_, stderr, err := execute(newRmCommand(c), "9")

	require.NoError(t, err)
	assert.Contains(t, stderr, "nothing changed")
	assert.Equal(t, 5, c.Store.State().Tasks.Len())
}
