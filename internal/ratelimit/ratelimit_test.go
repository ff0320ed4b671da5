package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	t.Parallel()

	limiter := NewFixedWindow(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := limiter.Allow("alice")
		require.True(t, ok, "request %d should be admitted", i+1)
	}

	// The N+1th request in the window is rejected with a retry hint.
	ok, retryAfter := limiter.Allow("alice")
	require.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestFixedWindowKeysAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := NewFixedWindow(1, time.Minute)

	ok, _ := limiter.Allow("alice")
	require.True(t, ok)
	ok, _ = limiter.Allow("alice")
	require.False(t, ok)

	// A different key has its own budget.
	ok, _ = limiter.Allow("bob")
	require.True(t, ok)
}

func TestFixedWindowResetsAfterInterval(t *testing.T) {
	t.Parallel()

	now := time.Now()
	limiter := NewFixedWindow(2, time.Minute)
	limiter.timeFunc = func() time.Time { return now }

	ok, _ := limiter.Allow("alice")
	require.True(t, ok)
	ok, _ = limiter.Allow("alice")
	require.True(t, ok)
	ok, _ = limiter.Allow("alice")
	require.False(t, ok)

	// Advance past the window boundary; the counter starts fresh.
	now = now.Add(time.Minute + time.Second)
	ok, _ = limiter.Allow("alice")
	require.True(t, ok)
}

func TestFixedWindowSweepDropsStaleKeys(t *testing.T) {
	t.Parallel()

	now := time.Now()
	limiter := NewFixedWindow(5, time.Minute)
	limiter.timeFunc = func() time.Time { return now }

	for _, key := range []string{"a", "b", "c"} {
		ok, _ := limiter.Allow(key)
		require.True(t, ok)
	}

	now = now.Add(2 * time.Minute)
	ok, _ := limiter.Allow("d")
	require.True(t, ok)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.windows, 1)
}

func TestFixedWindowConcurrentCounting(t *testing.T) {
	t.Parallel()

	const limit = 50
	limiter := NewFixedWindow(limit, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < limit*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("shared"); ok {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly the budget is admitted, with no lost updates.
	assert.Equal(t, limit, admitted)
}
