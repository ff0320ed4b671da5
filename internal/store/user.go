package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It hashes the plaintext Password before persisting; the plaintext is
	// never stored. Returns ErrEmailExists or ErrNameExists if the email or
	// name is already taken, and wraps domain validation errors in
	// ErrInvalidEntity if the user data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details. If a new plaintext
	// Password is set on the user it is hashed and replaces the stored hash;
	// otherwise the existing hash is kept. Uniqueness of name and email is
	// re-checked against all other users.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID. Owned tasks and
	// issued tokens are removed with it. Returns ErrUserNotFound if the
	// user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction so multiple
	// operations can be executed atomically by the caller.
	WithTx(tx *sql.Tx) UserStore
}
