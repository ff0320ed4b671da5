package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// userTestEnv bundles a UserHandler with its mocks and one seeded,
// "logged in" user.
type userTestEnv struct {
	handler      *UserHandler
	userStore    *mocks.MockUserStore
	tokenService *mocks.MockTokenService
	user         *domain.User
	token        string
}

func newUserTestEnv(t *testing.T) *userTestEnv {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	tokenService := mocks.NewMockTokenService()
	userService := service.NewUserService(nil, userStore, tokenService, t.TempDir(), nil)

	user := seedUser(t, userStore, "Ada", "ada@example.com", "secret123")
	const token = "current-session"
	tokenService.Valid[token] = user.ID

	return &userTestEnv{
		handler:      NewUserHandler(userService, testMaxUploadBytes),
		userStore:    userStore,
		tokenService: tokenService,
		user:         user,
		token:        token,
	}
}

// request builds an authenticated request the way the auth middleware
// would have left it.
func (env *userTestEnv) request(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/user", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, env.user.ID)
	ctx = context.WithValue(ctx, shared.TokenContextKey, env.token)
	return req.WithContext(ctx)
}

func TestUserGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the caller's profile", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		rr := httptest.NewRecorder()
		env.handler.Get(rr, env.request(http.MethodGet, ""))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, env.user.ID, resp.Data.ID)
		assert.Equal(t, "Ada", resp.Data.Name)
		assert.NotContains(t, rr.Body.String(), "hashed")
	})

	t.Run("requires an authenticated request", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		rr := httptest.NewRecorder()
		env.handler.Get(rr, httptest.NewRequest(http.MethodGet, "/api/user", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserUpdate(t *testing.T) {
	t.Parallel()

	t.Run("changes name and email", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		body := `{"name":"Ada Lovelace","email":"lovelace@example.com"}`
		rr := httptest.NewRecorder()
		env.handler.Update(rr, env.request(http.MethodPut, body))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "Ada Lovelace", resp.Data.Name)
		assert.Equal(t, "lovelace@example.com", resp.Data.Email)

		_, exists := env.userStore.Users["lovelace@example.com"]
		assert.True(t, exists, "store should hold the new email")
	})

	t.Run("rejects an email already taken by another user", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)
		seedUser(t, env.userStore, "Grace", "grace@example.com", "secret123")

		body := `{"name":"Ada","email":"grace@example.com"}`
		rr := httptest.NewRecorder()
		env.handler.Update(rr, env.request(http.MethodPut, body))

		require.Equal(t, http.StatusConflict, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Equal(t, "Email already exists", resp.Error)
	})

	t.Run("rejects a name already taken by another user", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)
		seedUser(t, env.userStore, "Grace", "grace@example.com", "secret123")

		body := `{"name":"Grace","email":"ada@example.com"}`
		rr := httptest.NewRecorder()
		env.handler.Update(rr, env.request(http.MethodPut, body))

		require.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		body := `{"name":"Ada","email":"not-an-email"}`
		rr := httptest.NewRecorder()
		env.handler.Update(rr, env.request(http.MethodPut, body))

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Contains(t, resp.Fields, "email")
	})
}

func TestUserUpdateMultipart(t *testing.T) {
	t.Parallel()

	buildForm := func(t *testing.T, name, email string, avatar []byte) (*bytes.Buffer, string) {
		t.Helper()

		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		require.NoError(t, form.WriteField("name", name))
		require.NoError(t, form.WriteField("email", email))
		if avatar != nil {
			part, err := form.CreateFormFile("avatar", "avatar.png")
			require.NoError(t, err)
			_, err = part.Write(avatar)
			require.NoError(t, err)
		}
		require.NoError(t, form.Close())
		return &buf, form.FormDataContentType()
	}

	t.Run("stores a new avatar", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		var img bytes.Buffer
		require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))))

		body, contentType := buildForm(t, "Ada", "ada@example.com", img.Bytes())
		req := env.request(http.MethodPut, body.String())
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		env.handler.Update(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Data.AvatarPath)
	})

	t.Run("rejects a non-image avatar without touching the profile", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		// New name and email ride along with the bad avatar; none of it
		// may stick.
		body, contentType := buildForm(t, "Grace", "grace@example.com", []byte("<html>not an image</html>"))
		req := env.request(http.MethodPut, body.String())
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		env.handler.Update(rr, req)

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, decodeErrorResponse(t, rr).Fields, "avatar")

		stored, err := env.userStore.GetByID(context.Background(), env.user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", stored.Name)
		assert.Equal(t, "ada@example.com", stored.Email)
	})

	t.Run("accepts a form payload without an avatar", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		body, contentType := buildForm(t, "Ada", "ada@example.com", nil)
		req := env.request(http.MethodPut, body.String())
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		env.handler.Update(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Empty(t, resp.Data.AvatarPath)
	})
}

func TestUserUpdatePassword(t *testing.T) {
	t.Parallel()

	t.Run("changes the password and keeps only the current session", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		// A second live session that must die with the old password, and a
		// stranger's session that must not be touched.
		env.tokenService.Valid["other-session"] = env.user.ID
		strangerID := uuid.New()
		env.tokenService.Valid["stranger-session"] = strangerID

		body := `{"password":"brand-new-secret"}`
		rr := httptest.NewRecorder()
		env.handler.UpdatePassword(rr, env.request(http.MethodPatch, body))

		require.Equal(t, http.StatusNoContent, rr.Code)

		assert.Equal(t, "hashed:brand-new-secret", env.userStore.Users["ada@example.com"].HashedPassword)
		assert.Contains(t, env.tokenService.Valid, env.token, "current session survives")
		assert.NotContains(t, env.tokenService.Valid, "other-session")
		assert.Contains(t, env.tokenService.Valid, "stranger-session")
	})

	t.Run("rejects a short password", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		body := `{"password":"tiny"}`
		rr := httptest.NewRecorder()
		env.handler.UpdatePassword(rr, env.request(http.MethodPatch, body))

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Contains(t, resp.Fields, "password")
	})

	t.Run("requires an authenticated request", func(t *testing.T) {
		t.Parallel()
		env := newUserTestEnv(t)

		rr := httptest.NewRecorder()
		env.handler.UpdatePassword(rr, httptest.NewRequest(http.MethodPatch, "/api/user", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
