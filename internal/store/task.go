package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Listing is always scoped to an owning user at the query level so other
// users' tasks are never materialized, let alone filtered in memory.
type TaskStore interface {
	// Create saves a new task to the store.
	// Wraps domain validation errors in ErrInvalidEntity if the task data
	// is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner.
	// Ownership is the caller's concern. Returns ErrTaskNotFound if the
	// task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser returns up to limit tasks owned by userID starting at
	// offset, in stable creation order, plus a flag reporting whether more
	// rows exist past the returned page. An empty result is not an error.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Task, bool, error)

	// Update persists the task's current Name and State and bumps its
	// updated_at. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}
