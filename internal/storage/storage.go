// Package storage provides the whole-value key/value store backing
// client-side state (consent record, language preference). Values are
// read and written atomically per call; there are no partial updates.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the browser-local-storage shaped contract. Implementations
// must treat every call as a whole-value overwrite or read.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an in-memory Storage, used in tests and as the
// per-session store when no persistence path is configured.
func NewMemory() Storage {
	return &memoryStorage{values: map[string]string{}}
}

func (m *memoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type fileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a Storage persisted as a single JSON document at path.
// The file is rewritten wholesale on every Set/Remove.
func NewFile(path string) Storage {
	return &fileStorage{path: path}
}

func (f *fileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *fileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		values = map[string]string{}
	}
	values[key] = value
	return f.write(values)
}

func (f *fileStorage) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.write(values)
}

func (f *fileStorage) read() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (f *fileStorage) write(values map[string]string) error {
	b, err := json.Marshal(values)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
