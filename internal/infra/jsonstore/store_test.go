package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "store.json"))
}

func TestStore_GetMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "tasks")

	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "reads must not create the store file")
}

func TestStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	value := []byte(`[{"id":"a","text":"one","completed":false}]`)

	require.NoError(t, store.Set(ctx, "tasks", value))
	got, err := store.Get(ctx, "tasks")

	require.NoError(t, err)
	assert.JSONEq(t, string(value), string(got))
}

func TestStore_FileLayout(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "other", []byte(`{"x":1}`)))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Equal(t, []any{}, doc["tasks"])
	assert.Equal(t, map[string]any{"x": float64(1)}, doc["other"])

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_SetRejectsInvalidJSON(t *testing.T) {
	store := newTestStore(t)

	err := store.Set(context.Background(), "tasks", []byte(`{nope`))

	assert.Error(t, err)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Set(ctx, "tasks", []byte(`[]`)))

	require.NoError(t, store.Remove(ctx, "tasks"))
	_, err := store.Get(ctx, "tasks")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	// Removing again is fine.
	assert.NoError(t, store.Remove(ctx, "tasks"))
}

func TestStore_CorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("garbage"), 0o600))

	_, err := store.Get(context.Background(), "tasks")

	assert.ErrorIs(t, err, domain.ErrCorruptStore)
	assert.NotErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStore_SetMovesCorruptFileAside(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	require.NoError(t, store.Set(ctx, "tasks", []byte(`[]`)))

	got, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
	kept, err := os.ReadFile(store.Path() + CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(kept))
}

func TestStore_RemoveMovesCorruptFileAside(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("garbage"), 0o600))

	require.NoError(t, store.Remove(context.Background(), "tasks"))

	_, err := os.Stat(store.Path() + CorruptSuffix)
	assert.NoError(t, err)
}

func TestStore_EmptyFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), nil, 0o600))

	_, err := store.Get(context.Background(), "tasks")

	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "tasks", []byte(`[]`)), context.Canceled)
	_, err := store.Get(ctx, "tasks")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Remove(ctx, "tasks"), context.Canceled)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			// Separate instances share only the file and its lock.
			assert.NoError(t, New(path).Set(ctx, key, []byte(`true`)))
		}(key)
	}
	wg.Wait()

	store := New(path)
	for _, key := range keys {
		got, err := store.Get(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, "true", string(got))
	}
}
