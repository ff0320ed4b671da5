package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskName  = errors.New("task name cannot be empty")
	ErrEmptyTaskState = errors.New("task state cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner cannot be empty")
)

// DefaultTaskState is the state assigned to newly created tasks.
const DefaultTaskState = "active"

// Task is a to-do item owned by exactly one user. State is free-form text;
// clients may move a task through whatever workflow they like.
type Task struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates a Task owned by the given user with the default state.
func NewTask(userID uuid.UUID, name string) (*Task, error) {
	task := &Task{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		State:     DefaultTaskState,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Name == "" {
		return ErrEmptyTaskName
	}

	if t.State == "" {
		return ErrEmptyTaskState
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	return nil
}

// IsOwnedBy reports whether the task belongs to the given user.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}
