package service

import "errors"

// Common service errors.
var (
	// ErrTaskNotOwned is returned when a valid principal attempts to read or
	// mutate a task that belongs to another user. It is distinct from the
	// store's not-found error: the task exists, the caller just may not
	// touch it.
	ErrTaskNotOwned = errors.New("task not owned by user")
)
