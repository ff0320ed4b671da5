package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, task *domain.Task) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Task, bool, error)
	UpdateFn     func(ctx context.Context, task *domain.Task) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Data for the default implementation
	Tasks map[uuid.UUID]*domain.Task
}

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListByUser implements the TaskStore interface. The default implementation
// reproduces the real store's stable creation ordering and has_more
// detection.
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Task, bool, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, offset, limit)
	}

	owned := make([]*domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if task.UserID == userID {
			owned = append(owned, task)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID.String() < owned[j].ID.String()
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	if offset >= len(owned) {
		return []*domain.Task{}, false, nil
	}

	end := offset + limit
	hasMore := end < len(owned)
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], hasMore, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface. The mock has no transactions;
// it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
