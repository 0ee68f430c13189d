package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studioline/intake-backend/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBearerAuth(t *testing.T) {
	router := gin.New()
	router.Use(BearerAuth("s3cret"))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer s3cret", http.StatusOK},
		{"case-insensitive scheme", "bearer s3cret", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Contains(t, rr.Body.String(), `"error"`)
			}
		})
	}
}

func TestBearerAuth_EmptyConfiguredToken(t *testing.T) {
	router := gin.New()
	router.Use(BearerAuth(""))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	var seen string
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		seen = logging.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("echoes incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seen)
		assert.Contains(t, buf.String(), "[info] request_id=abc-123 operation=http.request method=GET path=/ping status=204")
	})

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

		rid := rr.Header().Get(RequestIDHeader)
		assert.Len(t, rid, 36)
		assert.Equal(t, rid, seen)
	})

	t.Run("replaces unusable id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 100))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Len(t, rr.Header().Get(RequestIDHeader), 36)
	})
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"*"}))
	router.Use(BearerAuth("s3cret"))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("preflight skips auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		req.Header.Set("Access-Control-Request-Method", "GET")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request carries header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		req.Header.Set("Authorization", "Bearer s3cret")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiter_BasicLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RatePerSecond:   10,
		Burst:           10,
		CleanupInterval: time.Minute,
		MaxAge:          time.Minute,
	})
	defer rl.Stop()

	// Should allow up to burst size
	for i := 0; i < 10; i++ {
		if !rl.Allow("test-key") {
			t.Errorf("Request %d should have been allowed", i)
		}
	}

	// Next request should be denied
	if rl.Allow("test-key") {
		t.Error("Request should have been rate limited")
	}

	// Other keys have their own bucket
	if !rl.Allow("other-key") {
		t.Error("other-key should not be rate limited")
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RatePerSecond: 1, Burst: 50})
	defer rl.Stop()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, allowed.Load(), int32(51))
	assert.GreaterOrEqual(t, allowed.Load(), int32(50))
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RatePerSecond: 1, Burst: 2})
	defer rl.Stop()

	router := gin.New()
	router.POST("/submit", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests {
			assert.Equal(t, "1", rr.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	// A different client is unaffected
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestRateLimiter_ZeroBurstStillAdmits(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RatePerSecond: 5, Burst: 0})
	defer rl.Stop()

	router := gin.New()
	router.POST("/submit", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RatePerSecond: 0})
	defer rl.Stop()

	router := gin.New()
	router.POST("/submit", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 20; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/submit", nil))
		require.Equal(t, http.StatusCreated, rr.Code)
	}
}
