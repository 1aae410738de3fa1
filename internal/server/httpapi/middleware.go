package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/rememberme/internal/common"
	"github.com/dmitrijs2005/rememberme/internal/cryptox"
	"github.com/dmitrijs2005/rememberme/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an id, reusing a client-supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger returns a middleware that logs each request after it completes.
func Logger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"request_id", c.GetString(requestIDKey),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		if c.Writer.Status() >= 500 {
			log.Error(c.Request.Context(), "request", args...)
			return
		}
		log.Info(c.Request.Context(), "request", args...)
	}
}

// RequireIssuerKey admits only callers presenting key in common.IssuerKeyHeader.
// With an empty key every request is refused.
func RequireIssuerKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cryptox.KeyMatches(c.GetHeader(common.IssuerKeyHeader), key) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": common.ErrorUnauthorized.Error()})
			return
		}
		c.Next()
	}
}
