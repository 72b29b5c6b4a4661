package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(t, 3, time.Minute)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.Equal(t, 0, rl.Remaining("a"))

	// other keys have their own budget
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 2, rl.Remaining("b"))

	*now = now.Add(time.Minute)
	assert.Equal(t, 3, rl.Remaining("a"))
	assert.True(t, rl.Allow("a"))
}

func TestRateLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	router := gin.New()
	router.Use(RateLimit(rl))
	router.GET("/test", okHandler)

	centerA := map[string]string{CenterHeaderKey: "11111111-1111-1111-1111-111111111111"}
	centerB := map[string]string{CenterHeaderKey: "22222222-2222-2222-2222-222222222222"}

	w := serve(router, http.MethodGet, "/test", centerA)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", centerA).Code)
	w = serve(router, http.MethodGet, "/test", centerA)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// the same client under another center is counted separately
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", centerB).Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, now := newTestLimiter(t, 2, time.Minute)
	rl.Allow("a")
	*now = now.Add(90 * time.Second)
	rl.Allow("b")

	*now = now.Add(45 * time.Second)
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "a")
	assert.Contains(t, rl.buckets, "b")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
