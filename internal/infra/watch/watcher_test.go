package watch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasklist/internal/domain"
	"github.com/runoshun/tasklist/internal/infra/crypto"
	"github.com/runoshun/tasklist/internal/infra/jsonstore"
	"github.com/runoshun/tasklist/internal/persist"
	"github.com/runoshun/tasklist/internal/state"
)

type fixture struct {
	path    string
	adapter *persist.Adapter
	store   *state.Store
	watcher *Watcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return newFixtureWithKV(t, path, jsonstore.New(path))
}

func newFixtureWithKV(t *testing.T, path string, kv domain.KeyValueStore) *fixture {
	t.Helper()
	adapter := persist.New(kv, "tasks", nil)
	tasks, err := adapter.LoadOrSeed(context.Background(), domain.DefaultSeed())
	require.NoError(t, err)
	store := state.New(nil, tasks)
	w, err := New(path, adapter, store, domain.DefaultSeed(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return &fixture{path: path, adapter: adapter, store: store, watcher: w}
}

// hookedStore runs afterGet once, after the first read returns.
type hookedStore struct {
	*jsonstore.Store
	afterGet func()
}

func (s *hookedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Store.Get(ctx, key)
	if hook := s.afterGet; hook != nil {
		s.afterGet = nil
		hook()
	}
	return data, err
}

func TestReload_ExternalWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	external := persist.New(jsonstore.New(f.path), "tasks", nil)
	want := domain.NewTasks(domain.Task{ID: "x", Text: "from elsewhere"})
	require.NoError(t, external.Save(ctx, want))

	var rehydrated bool
	f.store.Subscribe(func(c state.Change) { rehydrated = c.Rehydrated })
	f.watcher.Reload(ctx)

	assert.True(t, rehydrated)
	assert.True(t, f.store.State().Tasks.Equal(want))
}

func TestReload_OwnWriteIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	stale := domain.NewTasks(domain.Task{ID: "old"})
	require.NoError(t, f.adapter.Save(ctx, stale))

	calls := 0
	f.store.Subscribe(func(state.Change) { calls++ })
	f.watcher.Reload(ctx)

	assert.Equal(t, 0, calls)
	assert.True(t, f.store.State().Tasks.Equal(domain.DefaultSeed()))
}

func TestReload_RemovedFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Dispatch(domain.DeleteTask{ID: "0"}))
	require.NoError(t, f.adapter.Save(ctx, f.store.State().Tasks))

	external := persist.New(jsonstore.New(f.path), "tasks", nil)
	require.NoError(t, external.Clear(ctx))
	f.watcher.Reload(ctx)

	assert.True(t, f.store.State().Tasks.Equal(domain.DefaultSeed()))
}

func TestReload_UnwrittenChangeKept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.store.Dispatch(domain.AddTask{Text: "Not written yet"}))
	local := f.store.State().Tasks

	external := persist.New(jsonstore.New(f.path), "tasks", nil)
	require.NoError(t, external.Save(ctx, domain.NewTasks(domain.Task{ID: "x", Text: "external"})))
	f.watcher.Reload(ctx)

	assert.True(t, f.store.State().Tasks.Equal(local))
}

func TestReload_WriteDuringReadKeepsNewerState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	kv := &hookedStore{Store: jsonstore.New(path)}
	f := newFixtureWithKV(t, path, kv)

	external := persist.New(jsonstore.New(path), "tasks", nil)
	require.NoError(t, external.Save(ctx, domain.NewTasks(domain.Task{ID: "x", Text: "older"})))

	// A local change is committed and written while the reload is reading.
	kv.afterGet = func() {
		require.NoError(t, f.store.Dispatch(domain.AddTask{Text: "Newer"}))
		require.NoError(t, f.adapter.Save(ctx, f.store.State().Tasks))
	}
	f.watcher.Reload(ctx)

	tasks := f.store.State().Tasks
	require.Equal(t, 6, tasks.Len())
	assert.Equal(t, "Newer", tasks.At(5).Text)
}

func TestReload_ReadErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	f := newFixtureWithKV(t, path, crypto.NewSealedStore(jsonstore.New(path), mustEncryptor(t)))

	// A plaintext value cannot be opened by the sealed store.
	external := persist.New(jsonstore.New(path), "tasks", nil)
	require.NoError(t, external.Save(ctx, domain.NewTasks(domain.Task{ID: "x", Text: "plain"})))
	f.watcher.Reload(ctx)

	assert.True(t, f.store.State().Tasks.Equal(domain.DefaultSeed()))
}

func mustEncryptor(t *testing.T) *crypto.Encryptor {
	t.Helper()
	enc, err := crypto.NewEncryptor("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	return enc
}

func TestReload_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.watcher.Reload(ctx)

	assert.True(t, f.store.State().Tasks.Equal(domain.DefaultSeed()))
}

func TestStart_PicksUpExternalWrite(t *testing.T) {
	f := newFixture(t)
	f.watcher.SetDebounce(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- f.watcher.Start(ctx) }()

	want := domain.NewTasks(domain.Task{ID: "x", Text: "external"})
	external := persist.New(jsonstore.New(f.path), "tasks", nil)

	// Keep writing until the watcher is registered and reacts.
	assert.Eventually(t, func() bool {
		_ = external.Save(context.Background(), want)
		return f.store.State().Tasks.Equal(want)
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
