package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the client-chosen key of a mutating request.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// RequireIdempotencyKey rejects requests without a usable Idempotency-Key
// header and stores the key for the handler.
func RequireIdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": IdempotencyKeyHeader + " header required"})
			return
		}
		if len(key) > maxIdempotencyKeyLength || strings.ContainsAny(key, " \t\r\n") {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rejected malformed idempotency key", slog.Int("length", len(key)))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + IdempotencyKeyHeader + " header"})
			return
		}

		c.Set(string(idemKey), key)
		c.Next()
	}
}

// GetIdempotencyKey returns the key stored by RequireIdempotencyKey.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	key := c.GetString(string(idemKey))
	return key, key != ""
}
