package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/ratelimit"
)

// RateLimitMiddleware rejects requests that exceed a fixed-window budget.
// Limit keys by the authenticated user when the request carries one, falling
// back to the client IP; LimitByIP always keys by client IP so it can run
// ahead of authentication and reject floods before the token lookup.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware with the given
// limiter.
func NewRateLimitMiddleware(limiter ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit enforces the window budget keyed by user for authenticated requests,
// by client IP otherwise.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return m.limit(next, limitKey)
}

// LimitByIP enforces the window budget keyed by client IP regardless of
// authentication state.
func (m *RateLimitMiddleware) LimitByIP(next http.Handler) http.Handler {
	return m.limit(next, clientIPKey)
}

func (m *RateLimitMiddleware) limit(next http.Handler, key func(*http.Request) string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := m.limiter.Allow(key(r))
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limitKey derives the counter key for a request: the user ID for
// authenticated calls, the client IP otherwise.
func limitKey(r *http.Request) string {
	if userID, ok := GetUserID(r); ok {
		return "user:" + userID.String()
	}
	return clientIPKey(r)
}

// clientIPKey keys by the client IP. chi's RealIP middleware has already
// rewritten RemoteAddr from forwarding headers by the time this runs.
func clientIPKey(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return "ip:" + ip
}
