package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTokenStore implements store.TokenStore for testing.
type MockTokenStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, token *store.AuthToken) error
	GetByHashFn          func(ctx context.Context, tokenHash string) (*store.AuthToken, error)
	DeleteByHashFn       func(ctx context.Context, tokenHash string) error
	DeleteByUserFn       func(ctx context.Context, userID uuid.UUID) error
	DeleteByUserExceptFn func(ctx context.Context, userID uuid.UUID, keepHash string) error

	// Data for the default implementation, keyed by token hash
	Tokens map[string]*store.AuthToken
}

// NewMockTokenStore creates a new mock store with initialized defaults.
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{
		Tokens: make(map[string]*store.AuthToken),
	}
}

// Ensure MockTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*MockTokenStore)(nil)

// Create implements the TokenStore interface.
func (m *MockTokenStore) Create(ctx context.Context, token *store.AuthToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token)
	}

	m.Tokens[token.TokenHash] = token
	return nil
}

// GetByHash implements the TokenStore interface.
func (m *MockTokenStore) GetByHash(ctx context.Context, tokenHash string) (*store.AuthToken, error) {
	if m.GetByHashFn != nil {
		return m.GetByHashFn(ctx, tokenHash)
	}

	token, exists := m.Tokens[tokenHash]
	if !exists {
		return nil, store.ErrTokenNotFound
	}
	return token, nil
}

// DeleteByHash implements the TokenStore interface.
func (m *MockTokenStore) DeleteByHash(ctx context.Context, tokenHash string) error {
	if m.DeleteByHashFn != nil {
		return m.DeleteByHashFn(ctx, tokenHash)
	}

	delete(m.Tokens, tokenHash)
	return nil
}

// DeleteByUser implements the TokenStore interface.
func (m *MockTokenStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserFn != nil {
		return m.DeleteByUserFn(ctx, userID)
	}

	for hash, token := range m.Tokens {
		if token.UserID == userID {
			delete(m.Tokens, hash)
		}
	}
	return nil
}

// DeleteByUserExcept implements the TokenStore interface.
func (m *MockTokenStore) DeleteByUserExcept(ctx context.Context, userID uuid.UUID, keepHash string) error {
	if m.DeleteByUserExceptFn != nil {
		return m.DeleteByUserExceptFn(ctx, userID, keepHash)
	}

	for hash, token := range m.Tokens {
		if token.UserID == userID && hash != keepHash {
			delete(m.Tokens, hash)
		}
	}
	return nil
}
