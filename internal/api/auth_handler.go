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
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	userStore        store.UserStore
	userService      *service.UserService
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	maxUploadBytes   int64
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	userService *service.UserService,
	tokenService auth.TokenService,
	passwordVerifier auth.PasswordVerifier,
	maxUploadBytes int64,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		userService:      userService,
		tokenService:     tokenService,
		passwordVerifier: passwordVerifier,
		validator:        newValidator(),
		maxUploadBytes:   maxUploadBytes,
	}
}

// Register handles POST /auth/register. The payload is JSON, or
// multipart/form-data when the registration carries an avatar image.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, avatar, err := h.decodeRegister(w, r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body exceeds the upload size limit")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if avatar != nil {
		defer func() { _ = avatar.Close() }()
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, ValidationFields(err))
		return
	}

	// A bad avatar fails the whole registration, before the account exists.
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

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusConflict, GetSafeErrorMessage(err))
			return
		}
		slog.Error("failed to create user", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if avatar != nil {
		if updated, err := h.userService.SaveAvatar(r.Context(), user.ID, avatar); err != nil {
			// The avatar already passed validation, so this is a storage
			// failure. The account exists; the upload is dropped, not the
			// registration.
			slog.Warn("failed to save avatar at registration",
				"error", redact.Error(err), "user_id", user.ID)
		} else {
			user = updated
		}
	}

	token, err := h.tokenService.Issue(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to issue authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:  user,
		Token: token,
	})
}

// Login handles POST /auth/login. Unknown email and wrong password produce
// the same response, so a caller cannot discover which emails are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationError(w, r, ValidationFields(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to get user by email", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokenService.Issue(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", redact.Error(err), "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to issue authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  user,
		Token: token,
	})
}

// Logout handles GET /auth/logout. It revokes the token the request was
// authenticated with; the token is dead from this response onward.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.tokenService.Revoke(r.Context(), token); err != nil {
		slog.Error("failed to revoke token", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeRegister reads a registration payload from JSON or multipart form
// data. For multipart requests the optional avatar file is returned for the
// caller to consume; the body is size-bounded before any parsing.
func (h *AuthHandler) decodeRegister(
	w http.ResponseWriter,
	r *http.Request,
) (RegisterRequest, multipart.File, error) {
	var req RegisterRequest

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		err := shared.DecodeJSON(r, &req)
		return req, nil, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return req, nil, err
	}

	req.Name = r.FormValue("name")
	req.Email = r.FormValue("email")
	req.Password = r.FormValue("password")

	avatar, _, err := r.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil, nil
		}
		return req, nil, err
	}
	return req, avatar, nil
}
