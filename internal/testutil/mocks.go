// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/tasklist/internal/domain"
)

// SequentialIDs is a deterministic domain.IDGenerator producing
// "<Prefix>1", "<Prefix>2", ...
type SequentialIDs struct {
	Prefix string
	n      int
	mu     sync.Mutex
}

// NewID returns the next id in the sequence.
func (g *SequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "task-"
	}
	return fmt.Sprintf("%s%d", prefix, g.n)
}

// MockKeyValueStore is a test double for domain.KeyValueStore.
// Fields are ordered to minimize memory padding.
type MockKeyValueStore struct {
	Values    map[string][]byte
	GetErr    error
	SetErr    error
	RemoveErr error
	SetCalls  int
	Closed    bool
	mu        sync.Mutex
}

// NewMockKeyValueStore creates a new MockKeyValueStore with initialized maps.
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		Values: make(map[string][]byte),
	}
}

// Get returns the stored value.
func (m *MockKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.Values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a value.
func (m *MockKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = append([]byte(nil), value...)
	return nil
}

// Remove deletes a value.
func (m *MockKeyValueStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Values, key)
	return nil
}

// Close marks the store closed.
func (m *MockKeyValueStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Value returns the stored value under key as a string ("" if absent).
func (m *MockKeyValueStore) Value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.Values[key])
}

// Calls returns the number of Set calls so far.
func (m *MockKeyValueStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SetCalls
}

// MockLogger records log entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// LogEntry is a single recorded log line.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

func (l *MockLogger) record(level, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

func (l *MockLogger) Debug(category, msg string) { l.record("DEBUG", category, msg) }
func (l *MockLogger) Info(category, msg string)  { l.record("INFO", category, msg) }
func (l *MockLogger) Warn(category, msg string)  { l.record("WARN", category, msg) }
func (l *MockLogger) Error(category, msg string) { l.record("ERROR", category, msg) }

// Has reports whether an entry with the given level and category was logged.
func (l *MockLogger) Has(level, category string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.Entries {
		if e.Level == level && e.Category == category {
			return true
		}
	}
	return false
}

// MockConfigLoader returns a fixed configuration.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns Config (or defaults) and Err.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr     error
	Initialized *domain.Config
	Info        domain.ConfigInfo
}

// GetGlobalConfigInfo returns Info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitGlobalConfig records cfg unless InitErr is set.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = cfg
	m.Info.Exists = true
	return nil
}

var (
	_ domain.ConfigLoader  = (*MockConfigLoader)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
	_ domain.KeyValueStore = (*MockKeyValueStore)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
	_ domain.IDGenerator   = (*SequentialIDs)(nil)
)
