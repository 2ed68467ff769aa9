// Package service provides the domain services for dialauth.
package service

import (
	"context"
	"sync"

	"github.com/yndnr/dialauth/internal/core/domain"
)

// mockUserRepo is an in-memory UserRepository for tests.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User

	// failWith, when set, makes every call fail with this error.
	failWith error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.Phone]; ok {
		return domain.ErrUserExists
	}
	m.users[user.Phone] = user.Clone()
	return nil
}

func (m *mockUserRepo) Get(_ context.Context, phone string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.users[phone]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.Phone]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.Phone] = user.Clone()
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[phone]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, phone)
	return nil
}

// mockTokenRepo is an in-memory TokenRepository for tests.
type mockTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.Token

	failWith error
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*domain.Token)}
}

func (m *mockTokenRepo) Create(_ context.Context, token *domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.tokens[token.ID]; ok {
		return domain.ErrStorage
	}
	m.tokens[token.ID] = token.Clone()
	return nil
}

func (m *mockTokenRepo) Get(_ context.Context, id string) (*domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	token, ok := m.tokens[id]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return token.Clone(), nil
}

func (m *mockTokenRepo) Update(_ context.Context, token *domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.tokens[token.ID]; !ok {
		return domain.ErrTokenNotFound
	}
	m.tokens[token.ID] = token.Clone()
	return nil
}

func (m *mockTokenRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.tokens[id]; !ok {
		return domain.ErrTokenNotFound
	}
	delete(m.tokens, id)
	return nil
}

// put inserts a token directly, bypassing the authority.
func (m *mockTokenRepo) put(token *domain.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.ID] = token.Clone()
}

// newTestHasher returns a hasher with a fixed test secret.
func newTestHasher() *Argon2Hasher {
	h, err := NewArgon2Hasher("unit-test-secret")
	if err != nil {
		panic(err)
	}
	return h
}
