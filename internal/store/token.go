package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthToken is the stored half of an issued bearer token. Only the SHA-256
// digest of the plaintext is kept; the plaintext leaves the server exactly
// once, at issuance.
type AuthToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means the token lives until revoked
}

// TokenStore defines the interface for bearer token persistence.
type TokenStore interface {
	// Create saves a newly issued token mapping.
	Create(ctx context.Context, token *AuthToken) error

	// GetByHash looks up a token by its digest.
	// Returns ErrTokenNotFound if no live mapping exists.
	GetByHash(ctx context.Context, tokenHash string) (*AuthToken, error)

	// DeleteByHash revokes a token by its digest. Revocation is idempotent:
	// deleting an unknown or already-revoked token is not an error.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByUser revokes every token issued to the given user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// DeleteByUserExcept revokes every token issued to the given user other
	// than the one with keepHash. Used on password change so the changing
	// session survives while all others are ended.
	DeleteByUserExcept(ctx context.Context, userID uuid.UUID, keepHash string) error
}
