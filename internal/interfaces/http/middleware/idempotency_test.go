package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/cache"
	"github.com/kitchenpos/backend/internal/testutil"
)

type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func (failingStore) IsProcessed(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func (failingStore) Release(context.Context, string) error {
	return errors.New("connection refused")
}

func (failingStore) Close() error { return nil }

func idempotentRouter(t *testing.T, calls *int, store shared.IdempotencyStore) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.Use(RequestID(), Idempotency(store, time.Minute, zap.NewNop()))
	handler := func(c *gin.Context) {
		*calls++
		c.Status(http.StatusCreated)
	}
	r.POST("/api/v1/orders", handler)
	r.POST("/api/v1/products", handler)
	r.GET("/api/v1/orders", handler)
	return r
}

func send(r *gin.Engine, method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	t.Run("replay on same route is rejected", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(0)
		defer store.Close()
		calls := 0
		r := idempotentRouter(t, &calls, store)

		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/orders", "k-1").Code)
		w := send(r, http.MethodPost, "/api/v1/orders", "k-1")

		testutil.AssertErrorCode(t, w, http.StatusConflict, "ERR_DUPLICATE_REQUEST")
		assert.Equal(t, 1, calls)
	})

	t.Run("same key on another route is independent", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(0)
		defer store.Close()
		calls := 0
		r := idempotentRouter(t, &calls, store)

		send(r, http.MethodPost, "/api/v1/orders", "k-1")
		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/products", "k-1").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("requests without a key are not guarded", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(0)
		defer store.Close()
		calls := 0
		r := idempotentRouter(t, &calls, store)

		send(r, http.MethodPost, "/api/v1/orders", "")
		send(r, http.MethodPost, "/api/v1/orders", "")
		assert.Equal(t, 2, calls)
		assert.Zero(t, store.Size())
	})

	t.Run("GET ignores the header", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(0)
		defer store.Close()
		calls := 0
		r := idempotentRouter(t, &calls, store)

		send(r, http.MethodGet, "/api/v1/orders", "k-1")
		send(r, http.MethodGet, "/api/v1/orders", "k-1")
		assert.Equal(t, 2, calls)
	})

	t.Run("oversized key is rejected", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(0)
		defer store.Close()
		calls := 0
		r := idempotentRouter(t, &calls, store)

		w := send(r, http.MethodPost, "/api/v1/orders", strings.Repeat("k", MaxIdempotencyKeyLength+1))
		testutil.AssertErrorCode(t, w, http.StatusBadRequest, "ERR_BAD_REQUEST")
		assert.Zero(t, calls)
	})

	t.Run("failed request does not consume the key", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore(0)
		defer store.Close()
		calls := 0
		r := gin.New()
		r.Use(RequestID(), Idempotency(store, time.Minute, zap.NewNop()))
		r.POST("/api/v1/orders", func(c *gin.Context) {
			calls++
			if calls == 1 {
				c.Status(http.StatusUnprocessableEntity)
				return
			}
			c.Status(http.StatusCreated)
		})

		assert.Equal(t, http.StatusUnprocessableEntity, send(r, http.MethodPost, "/api/v1/orders", "k-1").Code)
		assert.Zero(t, store.Size())

		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/orders", "k-1").Code)
		w := send(r, http.MethodPost, "/api/v1/orders", "k-1")
		testutil.AssertErrorCode(t, w, http.StatusConflict, "ERR_DUPLICATE_REQUEST")
		assert.Equal(t, 2, calls)
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		calls := 0
		r := idempotentRouter(t, &calls, failingStore{})

		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/orders", "k-1").Code)
		assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/v1/orders", "k-1").Code)
		assert.Equal(t, 2, calls)
	})
}
