package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface using a
// PostgreSQL database as the storage backend. Only token digests are
// persisted; an attacker reading the table cannot reconstruct usable
// bearer tokens.
type PostgresTokenStore struct {
	db store.DBTX
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface.
func NewPostgresTokenStore(db store.DBTX) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresTokenStore{db: db}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// Create implements store.TokenStore.Create.
func (s *PostgresTokenStore) Create(ctx context.Context, token *store.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert auth token: %w", err)
	}

	return nil
}

// GetByHash implements store.TokenStore.GetByHash.
func (s *PostgresTokenStore) GetByHash(ctx context.Context, tokenHash string) (*store.AuthToken, error) {
	query := `
		SELECT id, user_id, token_hash, created_at, expires_at
		FROM auth_tokens
		WHERE token_hash = $1
	`
	var token store.AuthToken
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.CreatedAt,
		&token.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to scan auth token: %w", err)
	}

	return &token, nil
}

// DeleteByHash implements store.TokenStore.DeleteByHash. Deleting a token
// that does not exist is a no-op, which makes revocation idempotent.
func (s *PostgresTokenStore) DeleteByHash(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

// DeleteByUser implements store.TokenStore.DeleteByUser.
func (s *PostgresTokenStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete auth tokens for user: %w", err)
	}
	return nil
}

// DeleteByUserExcept implements store.TokenStore.DeleteByUserExcept.
func (s *PostgresTokenStore) DeleteByUserExcept(ctx context.Context, userID uuid.UUID, keepHash string) error {
	query := `DELETE FROM auth_tokens WHERE user_id = $1 AND token_hash <> $2`
	if _, err := s.db.ExecContext(ctx, query, userID, keepHash); err != nil {
		return fmt.Errorf("failed to delete auth tokens for user: %w", err)
	}
	return nil
}
