// Package jsonstore provides a JSON file-based implementation of KeyValueStore.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/tasklist/internal/domain"
)

// CorruptSuffix is appended to the name of an unreadable store file when it
// is moved aside by a write.
const CorruptSuffix = ".corrupt"

// storeData is the JSON file structure: one raw JSON document per key.
type storeData map[string]json.RawMessage

// Store implements domain.KeyValueStore using a JSON file.
// Values must themselves be valid JSON.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.withLock(func(data storeData) error {
		raw, ok := data[key]
		if !ok {
			return domain.ErrKeyNotFound
		}
		value = append([]byte(nil), raw...)
		return nil
	})
	return value, err
}

// Set replaces the value stored under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("set %q: value is not valid JSON", key)
	}
	return s.withLockWrite(func(data storeData) error {
		data[key] = append(json.RawMessage(nil), value...)
		return nil
	})
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.withLockWrite(func(data storeData) error {
		delete(data, key)
		return nil
	})
}

// Close is a no-op; the file is opened per operation.
func (s *Store) Close() error {
	return nil
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
// A corrupt file is moved aside and the write starts from an empty store.
func (s *Store) withLockWrite(fn func(storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if errors.Is(err, domain.ErrCorruptStore) {
		data, err = s.quarantine()
	}
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the file. A missing or empty file is an empty store.
func (s *Store) read() (storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(storeData), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(content) == 0 {
		return make(storeData), nil
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, s.path, err)
	}
	if data == nil {
		data = make(storeData)
	}

	return data, nil
}

// quarantine renames the store file to path+CorruptSuffix, replacing an
// earlier one, and returns an empty store. Caller holds the write lock.
func (s *Store) quarantine() (storeData, error) {
	if err := os.Rename(s.path, s.path+CorruptSuffix); err != nil {
		return nil, fmt.Errorf("move corrupt store file aside: %w", err)
	}
	return make(storeData), nil
}

func (s *Store) write(data storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements KeyValueStore.
var _ domain.KeyValueStore = (*Store)(nil)
