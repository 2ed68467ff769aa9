// Package storage provides the record store for dialauth.
package storage

import (
	"context"
	"errors"

	"github.com/yndnr/dialauth/internal/core/domain"
)

// UserStore adapts a RecordStore to the typed user repository the services
// consume, translating storage errors into domain errors.
type UserStore struct {
	store RecordStore
}

// NewUserStore creates a user repository over store.
func NewUserStore(store RecordStore) *UserStore {
	return &UserStore{store: store}
}

// Create persists a new user record keyed by phone.
func (r *UserStore) Create(ctx context.Context, user *domain.User) error {
	err := r.store.Create(ctx, CollectionUsers, user.Phone, user)
	if err != nil {
		if errors.Is(err, ErrKeyExists) {
			return domain.ErrUserExists
		}
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Get retrieves a user record by phone.
func (r *UserStore) Get(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	if err := r.store.Read(ctx, CollectionUsers, phone, &user); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.ErrStorage.WithCause(err)
	}
	return &user, nil
}

// Update overwrites an existing user record.
func (r *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := r.store.Update(ctx, CollectionUsers, user.Phone, user); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.ErrUserNotFound
		}
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Delete removes a user record by phone.
func (r *UserStore) Delete(ctx context.Context, phone string) error {
	if err := r.store.Delete(ctx, CollectionUsers, phone); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.ErrUserNotFound
		}
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// TokenStore adapts a RecordStore to the typed token repository the token
// authority consumes.
type TokenStore struct {
	store RecordStore
}

// NewTokenStore creates a token repository over store.
func NewTokenStore(store RecordStore) *TokenStore {
	return &TokenStore{store: store}
}

// Create persists a new token record keyed by id.
func (r *TokenStore) Create(ctx context.Context, token *domain.Token) error {
	err := r.store.Create(ctx, CollectionTokens, token.ID, token)
	if err != nil {
		// A duplicate random id should not occur; report it as a storage
		// fault rather than a caller-visible conflict.
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Get retrieves a token record by id.
func (r *TokenStore) Get(ctx context.Context, id string) (*domain.Token, error) {
	var token domain.Token
	if err := r.store.Read(ctx, CollectionTokens, id, &token); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, domain.ErrStorage.WithCause(err)
	}
	return &token, nil
}

// Update overwrites an existing token record.
func (r *TokenStore) Update(ctx context.Context, token *domain.Token) error {
	if err := r.store.Update(ctx, CollectionTokens, token.ID, token); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.ErrTokenNotFound
		}
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}

// Delete removes a token record by id.
func (r *TokenStore) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, CollectionTokens, id); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return domain.ErrTokenNotFound
		}
		return domain.ErrStorage.WithCause(err)
	}
	return nil
}
