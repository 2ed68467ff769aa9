// Package storage provides the record store for dialauth.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is the default record-store engine: one JSON file per record,
// laid out as <dir>/<collection>/<key>.json.
//
// Creates rely on O_EXCL for existence-conflict atomicity; updates write a
// temporary file in the same directory and rename it over the record, so a
// concurrent reader never observes a partial write.
type FileStore struct {
	dir string

	mu     sync.RWMutex
	closed bool
}

// NewFileStore creates a file-backed record store rooted at dir.
// The directory is created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("filestore: dir is required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path returns the record file path for (collection, key).
func (s *FileStore) path(collection, key string) string {
	return filepath.Join(s.dir, collection, key+".json")
}

// Create stores a new record. Fails with ErrKeyExists if key is present.
func (s *FileStore) Create(_ context.Context, collection, key string, record any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("filestore: marshal record: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(s.dir, collection), 0750); err != nil {
		return fmt.Errorf("filestore: create collection dir: %w", err)
	}

	f, err := os.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return ErrKeyExists
		}
		return fmt.Errorf("filestore: create record: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("filestore: write record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("filestore: sync record: %w", err)
	}
	return f.Close()
}

// Read loads the record into out. Fails with ErrKeyNotFound if absent.
func (s *FileStore) Read(_ context.Context, collection, key string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	data, err := os.ReadFile(s.path(collection, key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("filestore: read record: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("filestore: unmarshal record: %w", err)
	}
	return nil
}

// Update overwrites an existing record via write-temp-then-rename.
// Fails with ErrKeyNotFound if absent; it never creates.
func (s *FileStore) Update(_ context.Context, collection, key string, record any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	path := s.path(collection, key)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("filestore: stat record: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("filestore: marshal record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.dir, collection), "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: close temp: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: rename temp: %w", err)
	}
	return nil
}

// Delete removes the record. Fails with ErrKeyNotFound if absent.
func (s *FileStore) Delete(_ context.Context, collection, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	if err := os.Remove(s.path(collection, key)); err != nil {
		if os.IsNotExist(err) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("filestore: delete record: %w", err)
	}
	return nil
}

// Close marks the store closed. Subsequent operations fail with ErrClosed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
