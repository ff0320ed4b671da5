package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/mocks"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	newProtected := func(tokenService *mocks.MockTokenService, seen *struct {
		userID uuid.UUID
		token  string
		called bool
	}) http.Handler {
		mw := NewAuthMiddleware(tokenService)
		return mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen.called = true
			seen.userID, _ = GetUserID(r)
			seen.token, _ = GetToken(r)
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("passes a valid token through with user ID in context", func(t *testing.T) {
		t.Parallel()

		tokenService := mocks.NewMockTokenService()
		userID := uuid.New()
		tokenService.Valid["good-token"] = userID

		var seen struct {
			userID uuid.UUID
			token  string
			called bool
		}
		handler := newProtected(tokenService, &seen)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, seen.called)
		assert.Equal(t, userID, seen.userID)
		assert.Equal(t, "good-token", seen.token)
	})

	t.Run("rejects a missing Authorization header", func(t *testing.T) {
		t.Parallel()

		var seen struct {
			userID uuid.UUID
			token  string
			called bool
		}
		handler := newProtected(mocks.NewMockTokenService(), &seen)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, seen.called, "handler must not run")
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		t.Parallel()

		var seen struct {
			userID uuid.UUID
			token  string
			called bool
		}
		handler := newProtected(mocks.NewMockTokenService(), &seen)

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer no-such-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, seen.called)
	})

	t.Run("rejects a malformed Authorization header", func(t *testing.T) {
		t.Parallel()

		for _, header := range []string{"good-token", "Basic good-token", "Bearer "} {
			var seen struct {
				userID uuid.UUID
				token  string
				called bool
			}
			handler := newProtected(mocks.NewMockTokenService(), &seen)

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			req.Header.Set("Authorization", header)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equalf(t, http.StatusUnauthorized, rr.Code, "header %q", header)
		}
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "well-formed", header: "Bearer abc123", wantToken: "abc123", wantOK: true},
		{name: "missing", header: "", wantOK: false},
		{name: "no scheme", header: "abc123", wantOK: false},
		{name: "wrong scheme", header: "Basic abc123", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			token, ok := BearerToken(req)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantToken, token)
		})
	}
}
