package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// tokenBytes is the entropy of an issued token: 32 random bytes, hex-encoded
// to a 64-character string.
const tokenBytes = 32

// opaqueTokenService is a TokenService backed by a TokenStore. Tokens carry
// no claims; everything about them lives in the store.
type opaqueTokenService struct {
	tokens   store.TokenStore
	tokenTTL time.Duration    // zero means tokens live until revoked
	timeFunc func() time.Time // injectable for testing
}

// Ensure opaqueTokenService implements TokenService interface
var _ TokenService = (*opaqueTokenService)(nil)

// NewTokenService creates a TokenService that issues opaque random tokens
// and persists their digests in the given store. Token lifetime comes from
// cfg.TokenTTLMinutes; zero disables expiry.
func NewTokenService(cfg config.AuthConfig, tokens store.TokenStore) TokenService {
	return &opaqueTokenService{
		tokens:   tokens,
		tokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		timeFunc: time.Now,
	}
}

// Issue implements TokenService.Issue.
func (s *opaqueTokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	log := logger.FromContext(ctx)

	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		log.Error("failed to generate token entropy", "error", err, "user_id", userID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	plaintext := hex.EncodeToString(raw)

	now := s.timeFunc().UTC()
	token := &store.AuthToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(plaintext),
		CreatedAt: now,
	}
	if s.tokenTTL > 0 {
		expires := now.Add(s.tokenTTL)
		token.ExpiresAt = &expires
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		log.Error("failed to persist token", "error", err, "user_id", userID)
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	log.Debug("token issued",
		"user_id", userID,
		"token_id", token.ID,
		"expires", token.ExpiresAt)

	return plaintext, nil
}

// Validate implements TokenService.Validate. Expired tokens are deleted on
// sight so the table does not accumulate dead rows.
func (s *opaqueTokenService) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}

	hash := hashToken(token)
	stored, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		log.Error("failed to look up token", "error", err)
		return uuid.Nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if stored.ExpiresAt != nil && s.timeFunc().After(*stored.ExpiresAt) {
		if err := s.tokens.DeleteByHash(ctx, hash); err != nil {
			log.Warn("failed to delete expired token", "error", err, "token_id", stored.ID)
		}
		return uuid.Nil, ErrExpiredToken
	}

	return stored.UserID, nil
}

// Revoke implements TokenService.Revoke.
func (s *opaqueTokenService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.DeleteByHash(ctx, hashToken(token))
}

// RevokeAllForUser implements TokenService.RevokeAllForUser.
func (s *opaqueTokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

// RevokeOthers implements TokenService.RevokeOthers.
func (s *opaqueTokenService) RevokeOthers(ctx context.Context, userID uuid.UUID, currentToken string) error {
	if currentToken == "" {
		return s.tokens.DeleteByUser(ctx, userID)
	}
	return s.tokens.DeleteByUserExcept(ctx, userID, hashToken(currentToken))
}

// hashToken computes the stored digest of a plaintext token.
func hashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
