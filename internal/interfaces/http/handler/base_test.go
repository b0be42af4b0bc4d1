package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/logger"
	"github.com/kitchenpos/backend/internal/interfaces/http/middleware"
	"github.com/kitchenpos/backend/internal/testutil"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input", shared.InvalidInput("bad %s", "price"), http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"wrapped not found", fmt.Errorf("load: %w", shared.ReferenceNotFound("Table %d not found", 1)), http.StatusNotFound, "ERR_NOT_FOUND"},
		{"invalid state", shared.InvalidState("Order is completed"), http.StatusUnprocessableEntity, "ERR_INVALID_STATE"},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, "ERR_INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := gin.New()
			r.Use(middleware.RequestID())
			r.GET("/test", func(c *gin.Context) { h.HandleError(c, tt.err) })

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-7")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			testutil.AssertErrorCode(t, w, tt.status, tt.code)
			resp := testutil.DecodeResponse[any](t, w)
			assert.Equal(t, "req-7", resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError_LogsInternal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	h := &BaseHandler{}
	r := gin.New()
	r.Use(middleware.RequestID(), logger.GinMiddleware(base))
	r.GET("/test", func(c *gin.Context) { h.HandleError(c, errors.New("connection reset")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	failures := logs.FilterMessage("request failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "connection reset", failures[0].ContextMap()["error"])
	assert.NotEmpty(t, failures[0].ContextMap()["request_id"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		h.HandleError(c, nil)
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
