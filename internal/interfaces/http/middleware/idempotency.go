package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/interfaces/http/dto"
)

const (
	// IdempotencyKeyHeader is the client-chosen key of a POST request
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds the header value kept in the store
	MaxIdempotencyKeyLength = 255

	requestKeyPrefix = "http:"
)

// Idempotency rejects a POST whose Idempotency-Key was already used on the
// same route within ttl. The key is claimed before the handler runs, so a
// second copy racing the first is refused too, and released again when the
// handler answers with a non-2xx status. Requests without the header pass
// through. When the store fails the request proceeds unguarded.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		storeKey := requestKeyPrefix + c.FullPath() + ":" + key
		fresh, err := store.MarkProcessed(c.Request.Context(), storeKey, ttl)
		if err != nil {
			logger.Warn("idempotency store unavailable, request not guarded",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
			))
			return
		}
		c.Next()

		// Nothing was written for a failed request, so its key stays usable
		// for the client's retry.
		if status := c.Writer.Status(); status < http.StatusOK || status >= http.StatusMultipleChoices {
			if err := store.Release(context.WithoutCancel(c.Request.Context()), storeKey); err != nil {
				logger.Warn("failed to release idempotency key",
					zap.String("path", c.FullPath()),
					zap.Int("status", status),
					zap.Error(err),
				)
			}
		}
	}
}
