package api

import (
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
type UpdateProfileRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest defines the payload for the password update endpoint.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateTaskRequest defines the payload for the task state update endpoint.
type UpdateTaskRequest struct {
	State string `json:"state" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
// Token is the opaque bearer credential; it is shown here exactly once and
// cannot be retrieved again.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Data *domain.Task `json:"data"`
}

// TaskListResponse wraps one page of tasks with pagination metadata.
type TaskListResponse struct {
	Data []*domain.Task  `json:"data"`
	Meta shared.PageMeta `json:"meta"`
}

// UserResponse wraps the caller's profile.
type UserResponse struct {
	Data *domain.User `json:"data"`
}
