package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	// Token is returned from Issue when IssueFn is unset.
	Token string
	// Err is returned from every method when set and the matching
	// function field is unset.
	Err error

	IssueFn            func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateFn         func(ctx context.Context, token string) (uuid.UUID, error)
	RevokeFn           func(ctx context.Context, token string) error
	RevokeAllForUserFn func(ctx context.Context, userID uuid.UUID) error
	RevokeOthersFn     func(ctx context.Context, userID uuid.UUID, currentToken string) error

	// Valid maps plaintext tokens to user IDs for the default Validate.
	Valid map[string]uuid.UUID

	// Revoked records tokens passed to Revoke.
	Revoked []string
}

// NewMockTokenService creates a mock token service with initialized defaults.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{
		Token: "test-token",
		Valid: make(map[string]uuid.UUID),
	}
}

// Ensure MockTokenService implements auth.TokenService interface
var _ auth.TokenService = (*MockTokenService)(nil)

// Issue implements the TokenService interface.
func (m *MockTokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	m.Valid[m.Token] = userID
	return m.Token, nil
}

// Validate implements the TokenService interface.
func (m *MockTokenService) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	if m.Err != nil {
		return uuid.Nil, m.Err
	}
	userID, ok := m.Valid[token]
	if !ok {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return userID, nil
}

// Revoke implements the TokenService interface.
func (m *MockTokenService) Revoke(ctx context.Context, token string) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, token)
	}
	if m.Err != nil {
		return m.Err
	}
	delete(m.Valid, token)
	m.Revoked = append(m.Revoked, token)
	return nil
}

// RevokeAllForUser implements the TokenService interface.
func (m *MockTokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if m.RevokeAllForUserFn != nil {
		return m.RevokeAllForUserFn(ctx, userID)
	}
	if m.Err != nil {
		return m.Err
	}
	for token, id := range m.Valid {
		if id == userID {
			delete(m.Valid, token)
		}
	}
	return nil
}

// RevokeOthers implements the TokenService interface.
func (m *MockTokenService) RevokeOthers(ctx context.Context, userID uuid.UUID, currentToken string) error {
	if m.RevokeOthersFn != nil {
		return m.RevokeOthersFn(ctx, userID, currentToken)
	}
	if m.Err != nil {
		return m.Err
	}
	for token, id := range m.Valid {
		if id == userID && token != currentToken {
			delete(m.Valid, token)
		}
	}
	return nil
}
