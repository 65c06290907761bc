package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
)

// FileKV stores all keys in one JSON document on disk. Values are kept as
// base64 strings so arbitrary bytes survive. Writes go to a temp file that is
// renamed over the original.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV creates a file-backed store, creating the parent directory if needed.
func NewFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("storage path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}
	return &FileKV{path: path}, nil
}

func (f *FileKV) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readLocked()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "key %q", key)
	}
	return v, nil
}

func (f *FileKV) Put(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.readLocked()
	if err != nil {
		// Unreadable documents are overwritten.
		doc = make(map[string][]byte)
	}
	doc[key] = value

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode storage document")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".mixtape-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(err, "failed to replace storage file")
	}
	return nil
}

func (f *FileKV) Close() error { return nil }

// Path returns the backing file path.
func (f *FileKV) Path() string { return f.path }

func (f *FileKV) readLocked() (map[string][]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return make(map[string][]byte), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read storage file")
	}
	doc := make(map[string][]byte)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode storage file")
	}
	return doc, nil
}
