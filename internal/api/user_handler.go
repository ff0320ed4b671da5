package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// UserHandler handles the caller's profile: reading it, updating name and
// email (optionally with a new avatar), and changing the password.
type UserHandler struct {
	userService    *service.UserService
	validator      *validator.Validate
	maxUploadBytes int64
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService, maxUploadBytes int64) *UserHandler {
	return &UserHandler{
		userService:    userService,
		validator:      newValidator(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Get handles GET /user: the caller's own profile.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondUserError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{Data: user})
}

// Update handles PUT /user: name and email, plus an optional avatar when
// the payload is multipart.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	var avatar multipart.File

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Avatar exceeds the upload size limit")
				return
			}
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")

		file, _, err := r.FormFile("avatar")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid avatar upload")
			return
		}
		if err == nil {
			avatar = file
			defer func() { _ = avatar.Close() }()
		}
	} else if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, ValidationFields(err))
		return
	}

	// Validate the avatar before touching the profile so a rejected upload
	// leaves the user record unchanged.
	if avatar != nil {
		if err := service.ValidateAvatar(avatar); err != nil {
			if errors.Is(err, service.ErrUnsupportedImage) {
				shared.RespondWithValidationError(w, r, map[string][]string{
					"avatar": {"The avatar must be a JPEG, PNG, GIF, or WebP image"},
				})
				return
			}
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid avatar upload")
			return
		}
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		h.respondUserError(w, r, err)
		return
	}

	if avatar != nil {
		user, err = h.userService.SaveAvatar(r.Context(), userID, avatar)
		if err != nil {
			h.respondUserError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{Data: user})
}

// UpdatePassword handles PATCH /user. Every other session the user holds is
// revoked along with the change; the current one stays live.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdatePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, ValidationFields(err))
		return
	}

	currentToken, _ := middleware.GetToken(r)
	if err := h.userService.UpdatePassword(r.Context(), userID, req.Password, currentToken); err != nil {
		h.respondUserError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondUserError maps a user service error to its HTTP response.
func (h *UserHandler) respondUserError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrPasswordTooShort) || errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, domain.ErrInvalidEmail) || errors.Is(err, domain.ErrEmptyName) {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		slog.Error("profile operation failed", "error", redact.Error(err))
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
