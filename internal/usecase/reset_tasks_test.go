package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/testutil"
)

func TestResetTasks_Execute(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewMockKeyValueStore()
	adapter := persist.New(kv, "tasks", nil)
	store := newTestStore(domain.DefaultSeed())
	adapter.Attach(store)
	defer func() { _ = adapter.Close() }()

	require.NoError(t, store.Dispatch(domain.DeleteTask{ID: "0"}))
	require.NoError(t, adapter.Flush(ctx))
	require.NotEmpty(t, kv.Value("tasks"))

	out, err := NewResetTasks(store, adapter, domain.DefaultSeed()).Execute(ctx, ResetTasksInput{})
	require.NoError(t, err)
	require.NoError(t, adapter.Flush(ctx))

	assert.True(t, out.Tasks.Equal(domain.DefaultSeed()))
	assert.True(t, store.State().Tasks.Equal(domain.DefaultSeed()))
	assert.Empty(t, kv.Value("tasks"), "seed is not written back")
	assert.True(t, adapter.Synced(domain.DefaultSeed()))
}

func TestResetTasks_Execute_PendingWriteError(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewMockKeyValueStore()
	kv.SetErr = assert.AnError
	adapter := persist.New(kv, "tasks", nil)
	store := newTestStore(domain.DefaultSeed())
	adapter.Attach(store)
	defer func() { _ = adapter.Close() }()
	require.NoError(t, store.Dispatch(domain.DeleteTask{ID: "0"}))

	_, err := NewResetTasks(store, adapter, domain.DefaultSeed()).Execute(ctx, ResetTasksInput{})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestResetTasks_Execute_RemoveError(t *testing.T) {
	kv := testutil.NewMockKeyValueStore()
	kv.RemoveErr = assert.AnError
	store := newTestStore(domain.Tasks{})

	_, err := NewResetTasks(store, persist.New(kv, "tasks", nil), domain.DefaultSeed()).Execute(context.Background(), ResetTasksInput{})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, store.State().Tasks.Len())
}
