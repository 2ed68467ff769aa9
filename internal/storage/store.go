// Package storage provides the record store for dialauth.
package storage

import (
	"context"
	"errors"
	"strings"
)

// Collection names.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
)

// Common errors.
var (
	// ErrKeyExists is returned by Create when the key is already present.
	ErrKeyExists = errors.New("storage: key already exists")

	// ErrKeyNotFound is returned when the key is absent.
	ErrKeyNotFound = errors.New("storage: key not found")

	// ErrBadKey is returned for empty keys or keys that would escape the
	// collection namespace.
	ErrBadKey = errors.New("storage: invalid key")

	// ErrClosed is returned after the store has been closed.
	ErrClosed = errors.New("storage: store closed")
)

// RecordStore is the durable (collection, key) -> record mapping.
//
// Record values are marshaled to and from JSON; callers pass a struct (or
// pointer for reads). Each operation is atomic per key; read-modify-write
// sequences built on top remain last-write-wins.
type RecordStore interface {
	// Create stores a new record. Fails with ErrKeyExists if key is present.
	Create(ctx context.Context, collection, key string, record any) error

	// Read loads the record into out. Fails with ErrKeyNotFound if absent.
	Read(ctx context.Context, collection, key string, out any) error

	// Update overwrites an existing record. Fails with ErrKeyNotFound if
	// absent; it never creates.
	Update(ctx context.Context, collection, key string, record any) error

	// Delete removes the record. Fails with ErrKeyNotFound if absent.
	Delete(ctx context.Context, collection, key string) error

	// Close releases engine resources.
	Close() error
}

// validKey rejects keys that are empty or could traverse outside the
// collection directory of the file engine.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, "/\\\x00")
}
