package main

import (
	"bytes"
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

// isolate points every tasklist directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("TASKLIST_CONFIG", "")
	return dir
}

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_EndToEnd(t *testing.T) {
	dir := isolate(t)

	out, err := runArgs(t, "add", "Write docs")
	require.NoError(t, err)
	id := strings.TrimSuffix(strings.TrimPrefix(out, "Added "), ": Write docs\n")
	require.NotEmpty(t, id)

	_, err = runArgs(t, "toggle", id[:8])
	require.NoError(t, err)

	_, err = runArgs(t, "rm", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "data", domain.AppDirName, domain.StoreFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tasks"`)

	out, err = runArgs(t, "export")
	require.NoError(t, err)
	tasks, err := persist.Decode([]byte(out))
	require.NoError(t, err)
	require.Equal(t, 5, tasks.Len())
	assert.Equal(t, "Get good at JavaScript", tasks.At(0).Text)
	assert.Equal(t, domain.Task{ID: id, Text: "Write docs", Completed: true}, tasks.At(4))

	out, err = runArgs(t, "list", "--filter", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Write docs")
	assert.NotContains(t, out, "Master React")
}

func TestRun_ResetReseeds(t *testing.T) {
	isolate(t)

	_, err := runArgs(t, "rm", "0")
	require.NoError(t, err)
	_, err = runArgs(t, "reset")
	require.NoError(t, err)

	out, err := runArgs(t, "export")
	require.NoError(t, err)
	tasks, err := persist.Decode([]byte(out))
	require.NoError(t, err)
	assert.True(t, tasks.Equal(domain.DefaultSeed()))
}

func TestRun_Error(t *testing.T) {
	isolate(t)

	_, err := runArgs(t, "list", "--filter", "done")

	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
