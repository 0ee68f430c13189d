package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studioline/intake-backend/internal/logging"
)

const (
	RequestIDHeader = "X-Request-Id"

	maxRequestIDLen = 64
)

// RequestIDMiddleware tags each request with an id, taken from X-Request-Id
// when the caller supplies a usable one, and logs one access line per request.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" || len(rid) > maxRequestIDLen || strings.ContainsAny(rid, " \r\n") {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		ctx := logging.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		logger := logging.FromContext(ctx)
		status := c.Writer.Status()
		if status >= 500 {
			logger.LogErrorf("http.request", "method=%s path=%s status=%d latency=%s",
				c.Request.Method, c.Request.URL.Path, status, time.Since(start))
			return
		}
		logger.LogInfof("http.request", "method=%s path=%s status=%d latency=%s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}
