package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// TaskHandler handles task CRUD for the authenticated principal.
type TaskHandler struct {
	taskService *service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   newValidator(),
	}
}

// List handles GET /tasks: one page of the caller's tasks in stable
// creation order.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	params := shared.ParsePageParams(r)
	page, err := h.taskService.List(r.Context(), userID, params.Offset(), params.PageSize)
	if err != nil {
		slog.Error("failed to list tasks", "error", redact.Error(err), "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Data: page.Tasks,
		Meta: shared.PageMeta{
			Page:     params.Page,
			PageSize: params.PageSize,
			HasMore:  page.HasMore,
		},
	})
}

// Create handles POST /tasks. Ownership is always the caller; the payload
// cannot assign a task to anyone else.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, ValidationFields(err))
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, req.Name)
	if err != nil {
		h.respondTaskError(w, r, err, userID)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{Data: task})
}

// Update handles PUT /tasks/{id}: sets the task's state after the ownership
// check.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, ValidationFields(err))
		return
	}

	task, err := h.taskService.UpdateState(r.Context(), userID, taskID, req.State)
	if err != nil {
		h.respondTaskError(w, r, err, userID)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{Data: task})
}

// Delete handles DELETE /tasks/{id}: a permanent hard delete after the
// ownership check.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		h.respondTaskError(w, r, err, userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondTaskError maps a task service error to its HTTP response, logging
// only the unexpected ones.
func (h *TaskHandler) respondTaskError(w http.ResponseWriter, r *http.Request, err error, userID uuid.UUID) {
	if errors.Is(err, domain.ErrEmptyTaskState) || errors.Is(err, domain.ErrEmptyTaskName) {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		slog.Error("task operation failed", "error", redact.Error(err), "user_id", userID)
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
