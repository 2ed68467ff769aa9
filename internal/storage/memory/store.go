// Package memory provides an in-memory record store for dialauth.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yndnr/dialauth/internal/storage"
)

// Store is a concurrency-safe in-memory record store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	closed      bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string][]byte),
	}
}

// Create stores a new record. Fails with storage.ErrKeyExists if present.
func (s *Store) Create(_ context.Context, collection, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("memory: marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string][]byte)
		s.collections[collection] = coll
	}
	if _, ok := coll[key]; ok {
		return storage.ErrKeyExists
	}
	coll[key] = data
	return nil
}

// Read loads the record into out. Fails with storage.ErrKeyNotFound if absent.
func (s *Store) Read(_ context.Context, collection, key string, out any) error {
	s.mu.RLock()
	data, ok := s.collections[collection][key]
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return storage.ErrClosed
	}
	if !ok {
		return storage.ErrKeyNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("memory: unmarshal record: %w", err)
	}
	return nil
}

// Update overwrites an existing record. Fails with storage.ErrKeyNotFound
// if absent.
func (s *Store) Update(_ context.Context, collection, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("memory: marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}

	coll, ok := s.collections[collection]
	if !ok {
		return storage.ErrKeyNotFound
	}
	if _, ok := coll[key]; !ok {
		return storage.ErrKeyNotFound
	}
	coll[key] = data
	return nil
}

// Delete removes the record. Fails with storage.ErrKeyNotFound if absent.
func (s *Store) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}

	coll, ok := s.collections[collection]
	if !ok {
		return storage.ErrKeyNotFound
	}
	if _, ok := coll[key]; !ok {
		return storage.ErrKeyNotFound
	}
	delete(coll, key)
	return nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Count returns the number of records in a collection. Test helper.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}
