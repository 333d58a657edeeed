package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("parent-a"), "request %d should be allowed", i+1)
		}
	})

	t.Run("blocks requests beyond the limit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("parent-b"))
		}
		assert.False(t, limiter.Allow("parent-b"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("eastside:10.0.0.1"))
		assert.True(t, limiter.Allow("eastside:10.0.0.1"))
		assert.False(t, limiter.Allow("eastside:10.0.0.1"))

		// A different tenant behind the same IP gets its own allowance
		assert.True(t, limiter.Allow("northside:10.0.0.1"))
		assert.True(t, limiter.Allow("northside:10.0.0.1"))
	})

	t.Run("allowance resets after the window", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("parent-c"))
		assert.True(t, limiter.Allow("parent-c"))
		assert.False(t, limiter.Allow("parent-c"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("parent-c"))
	})

	t.Run("Remaining tracks consumption", func(t *testing.T) {
		limiter := NewRateLimiter(4, time.Minute)

		assert.Equal(t, 4, limiter.Remaining("fresh-key"))

		limiter.Allow("parent-d")
		limiter.Allow("parent-d")
		assert.Equal(t, 2, limiter.Remaining("parent-d"))
	})

	t.Run("Remaining is the full limit after the window", func(t *testing.T) {
		limiter := NewRateLimiter(3, 30*time.Millisecond)

		limiter.Allow("parent-e")
		time.Sleep(40 * time.Millisecond)
		assert.Equal(t, 3, limiter.Remaining("parent-e"))
	})

	t.Run("safe under concurrent access", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)

		var wg sync.WaitGroup
		allowed := make(chan bool, 200)
		for i := 0; i < 200; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				allowed <- limiter.Allow("shared-key")
			}()
		}
		wg.Wait()
		close(allowed)

		count := 0
		for ok := range allowed {
			if ok {
				count++
			}
		}
		assert.Equal(t, 100, count, "exactly limit requests should pass")
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(limiter *RateLimiter) *gin.Engine {
		engine := gin.New()
		engine.Use(RateLimit(limiter))
		engine.POST("/checkout", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return engine
	}

	t.Run("passes requests under the limit with headers", func(t *testing.T) {
		engine := newEngine(NewRateLimiter(5, time.Minute))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("returns 429 once the limit is hit", func(t *testing.T) {
		engine := newEngine(NewRateLimiter(2, time.Minute))

		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = httptest.NewRecorder()
			engine.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/checkout", nil))
		}

		require.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.Contains(t, last.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("tenant header scopes the key", func(t *testing.T) {
		engine := newEngine(NewRateLimiter(1, time.Minute))

		first := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set("X-Tenant-ID", "eastside")
		engine.ServeHTTP(first, req)
		assert.Equal(t, http.StatusOK, first.Code)

		// Same IP under a different tenant is a different bucket
		second := httptest.NewRecorder()
		req2 := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req2.Header.Set("X-Tenant-ID", "northside")
		engine.ServeHTTP(second, req2)
		assert.Equal(t, http.StatusOK, second.Code)

		// Repeat under the first tenant is blocked
		third := httptest.NewRecorder()
		req3 := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req3.Header.Set("X-Tenant-ID", "eastside")
		engine.ServeHTTP(third, req3)
		assert.Equal(t, http.StatusTooManyRequests, third.Code)
	})
}

func TestRateLimitByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses the custom key extractor", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		engine := gin.New()
		engine.Use(RateLimitByKey(limiter, func(c *gin.Context) string {
			return c.GetHeader("X-Parent-Email")
		}))
		engine.POST("/checkout", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		send := func(email string) int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.Header.Set("X-Parent-Email", email)
			engine.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, send("morgan@example.com"))
		assert.Equal(t, http.StatusTooManyRequests, send("morgan@example.com"))
		assert.Equal(t, http.StatusOK, send("jordan@example.com"))
	})
}

func TestRateLimiter_CleanupDoesNotRace(t *testing.T) {
	// Short window so cleanup runs during the test
	limiter := NewRateLimiter(10, 10*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				limiter.Allow(fmt.Sprintf("key-%d", n))
				time.Sleep(time.Millisecond)
			}
		}(i)
	}
	wg.Wait()
}
