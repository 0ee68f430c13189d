package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// RatePerSecond is the sustained request rate allowed per client IP
	RatePerSecond int
	// Burst is the max number of requests accepted in a burst
	Burst int
	// CleanupInterval is how often to clean up old limiters
	CleanupInterval time.Duration
	// MaxAge is how long to keep a limiter after last use
	MaxAge time.Duration
}

// DefaultRateLimitConfig returns the defaults used for the public intake form
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RatePerSecond:   5,
		Burst:           10,
		CleanupInterval: 5 * time.Minute,
		MaxAge:          10 * time.Minute,
	}
}

// rateLimiterEntry holds a limiter and its last access time
type rateLimiterEntry struct {
	limiter      *rate.Limiter
	lastSeenNano atomic.Int64
}

// RateLimiter manages per-key rate limiters
type RateLimiter struct {
	config   RateLimitConfig
	limiters sync.Map // map[string]*rateLimiterEntry
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a new rate limiter with the given config
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	defaults := DefaultRateLimitConfig()
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}
	if config.MaxAge <= 0 {
		config.MaxAge = defaults.MaxAge
	}
	// rate.Limiter with burst 0 refuses everything.
	if config.RatePerSecond > 0 && config.Burst < 1 {
		config.Burst = 1
	}

	rl := &RateLimiter{
		config: config,
		stopCh: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// cleanup periodically removes old limiters
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			rl.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimiterEntry)
				lastSeen := time.Unix(0, entry.lastSeenNano.Load())
				if now.Sub(lastSeen) > rl.config.MaxAge {
					rl.limiters.Delete(key)
				}
				return true
			})
		case <-rl.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// getLimiter returns or creates a limiter for the given key
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now().UnixNano()

	if val, ok := rl.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.lastSeenNano.Store(now)
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter: rate.NewLimiter(rate.Limit(rl.config.RatePerSecond), rl.config.Burst),
	}
	entry.lastSeenNano.Store(now)
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// Allow checks if a request is allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware limits requests per client IP. A nil limiter or a zero rate
// lets every request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.config.RatePerSecond <= 0 {
			c.Next()
			return
		}

		if !rl.Allow("ip:" + c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.RatePerSecond))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
