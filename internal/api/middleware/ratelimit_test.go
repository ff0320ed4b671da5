package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/ratelimit"
)

// stubLimiter records the keys it sees and answers with a fixed verdict.
type stubLimiter struct {
	allow      bool
	retryAfter time.Duration
	keys       []string
}

var _ ratelimit.Limiter = (*stubLimiter)(nil)

func (s *stubLimiter) Allow(key string) (bool, time.Duration) {
	s.keys = append(s.keys, key)
	return s.allow, s.retryAfter
}

func TestLimit(t *testing.T) {
	t.Parallel()

	newHandler := func(limiter ratelimit.Limiter) (http.Handler, *bool) {
		called := false
		mw := NewRateLimitMiddleware(limiter)
		return mw.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})), &called
	}

	t.Run("admits requests under the budget", func(t *testing.T) {
		t.Parallel()

		handler, called := newHandler(&stubLimiter{allow: true})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, *called)
	})

	t.Run("rejects over-budget requests with 429 and Retry-After", func(t *testing.T) {
		t.Parallel()

		handler, called := newHandler(&stubLimiter{allow: false, retryAfter: 42 * time.Second})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "42", rr.Header().Get("Retry-After"))
		assert.False(t, *called, "handler must not run")
	})

	t.Run("rounds sub-second waits up to one second", func(t *testing.T) {
		t.Parallel()

		handler, _ := newHandler(&stubLimiter{allow: false, retryAfter: 300 * time.Millisecond})

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	})

	t.Run("keys authenticated requests by user ID", func(t *testing.T) {
		t.Parallel()

		limiter := &stubLimiter{allow: true}
		handler, _ := newHandler(limiter)
		userID := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))

		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "user:"+userID.String(), limiter.keys[0])
	})

	t.Run("keys anonymous requests by client IP without the port", func(t *testing.T) {
		t.Parallel()

		limiter := &stubLimiter{allow: true}
		handler, _ := newHandler(limiter)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "ip:203.0.113.7", limiter.keys[0])
	})
}

func TestLimitByIP(t *testing.T) {
	t.Parallel()

	t.Run("keys by client IP even for authenticated requests", func(t *testing.T) {
		t.Parallel()

		limiter := &stubLimiter{allow: true}
		mw := NewRateLimitMiddleware(limiter)
		handler := mw.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req.WithContext(ctx))

		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "ip:203.0.113.7", limiter.keys[0])
	})

	t.Run("rejects over-budget clients before the wrapped handler runs", func(t *testing.T) {
		t.Parallel()

		// Stands in for the auth middleware: an over-limit client must be
		// turned away without any token lookup.
		called := false
		mw := NewRateLimitMiddleware(&stubLimiter{allow: false, retryAfter: time.Second})
		handler := mw.LimitByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer junk")
		req.RemoteAddr = "203.0.113.7:51234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.False(t, called, "downstream middleware must not run")
	})
}
