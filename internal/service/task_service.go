package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskPage is one page of a user's tasks plus a flag reporting whether
// further pages exist. No total count is computed; callers page forward
// until HasMore is false.
type TaskPage struct {
	Tasks   []*domain.Task
	HasMore bool
}

// TaskService owns the task lifecycle and enforces ownership: every read or
// mutation of an individual task checks that the acting principal owns it,
// and listing is scoped to the principal at the query level.
type TaskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
// If logger is nil, the process default is used.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) *TaskService {
	if tasks == nil {
		panic("task store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// List returns one page of the user's tasks in stable creation order.
// An empty result is a valid page, not an error.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, offset, limit int) (*TaskPage, error) {
	tasks, hasMore, err := s.tasks.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskPage{Tasks: tasks, HasMore: hasMore}, nil
}

// Create adds a new task owned by the given user with the default state.
// The owner always comes from the authenticated principal; there is no way
// for request data to assign a task to someone else.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Task, error) {
	task, err := domain.NewTask(userID, name)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

// Get returns a single task after checking ownership.
// Returns store.ErrTaskNotFound if no such task exists at all, and
// ErrTaskNotOwned if it exists but belongs to another user.
func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

// UpdateState sets the task's state after checking ownership. State is
// free-form text; the only constraint is that it is non-empty.
func (s *TaskService) UpdateState(
	ctx context.Context,
	userID, taskID uuid.UUID,
	newState string,
) (*domain.Task, error) {
	newState = strings.TrimSpace(newState)
	if newState == "" {
		return nil, domain.ErrEmptyTaskState
	}

	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.State = newState
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug("task state updated",
		"task_id", task.ID,
		"user_id", userID,
		"state", newState)
	return task, nil
}

// Delete permanently removes the task after checking ownership.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// getOwned fetches a task and verifies the principal owns it.
func (s *TaskService) getOwned(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(userID) {
		s.logger.Debug("ownership check failed",
			"task_id", taskID,
			"owner_id", task.UserID,
			"user_id", userID)
		return nil, ErrTaskNotOwned
	}

	return task, nil
}
