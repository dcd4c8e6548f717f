package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the caller's operation reference.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// IdempotencyKey copies the Idempotency-Key header into the request context and echoes
// it on the response. Requests without the header pass through untouched.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key header is too long"})
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("idempotency_key", key))
		ctx := context.WithValue(c.Request.Context(), idempotencyKeyKey, key)
		c.Request = c.Request.WithContext(WithLogger(ctx, logger))
		c.Header(IdempotencyKeyHeader, key)
		c.Next()
	}
}

// GetIdempotencyKeyFromContext returns the Idempotency-Key of the request, if any.
func GetIdempotencyKeyFromContext(c *gin.Context) (string, bool) {
	key, ok := c.Request.Context().Value(idempotencyKeyKey).(string)
	return key, ok && key != ""
}
