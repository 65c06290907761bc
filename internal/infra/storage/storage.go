// Package storage provides key-value byte stores used to persist the playlist.
package storage

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a small key-value byte store.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// MemoryKV keeps values in memory. Used in tests and with the "memory" driver.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "key %q", key)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// Open returns the store for a driver name: "file", "sqlite" or "memory".
func Open(driver, path string) (KV, error) {
	switch driver {
	case "file":
		return NewFileKV(path)
	case "sqlite":
		return NewSQLiteKV(path)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, errors.Newf("unknown storage driver: %s", driver)
	}
}
