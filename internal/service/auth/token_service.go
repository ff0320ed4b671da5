package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenService manages the lifecycle of opaque bearer tokens: a token is a
// random string with no structure a client can decode; validity is
// determined solely by a server-side lookup.
type TokenService interface {
	// Issue generates a new token for the given user and returns its
	// plaintext. The plaintext is returned exactly once; only a digest is
	// retained server-side, so a lost token can only be revoked, never
	// recovered.
	Issue(ctx context.Context, userID uuid.UUID) (string, error)

	// Validate resolves a plaintext token to the user it was issued to.
	// Returns ErrInvalidToken for unknown or revoked tokens and
	// ErrExpiredToken for tokens past their configured lifetime.
	Validate(ctx context.Context, token string) (uuid.UUID, error)

	// Revoke invalidates a plaintext token. Revoking an unknown or
	// already-revoked token is not an error.
	Revoke(ctx context.Context, token string) error

	// RevokeAllForUser invalidates every token issued to the given user,
	// ending all of their sessions at once.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error

	// RevokeOthers invalidates every token issued to the given user except
	// the presented one, so the acting session stays alive while all others
	// are ended.
	RevokeOthers(ctx context.Context, userID uuid.UUID, currentToken string) error
}
