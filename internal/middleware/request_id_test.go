package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mcpfact/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRouter(captured *[2]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		captured[0] = GetRequestID(c.Request.Context())
		captured[1] = logger.GetTraceID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequestIDMiddlewareGenerates(t *testing.T) {
	var captured [2]string
	router := newRouter(&captured)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	requestID := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err)
	assert.Equal(t, requestID, captured[0])
	assert.Equal(t, requestID, captured[1])
	assert.Equal(t, requestID, w.Header().Get(HeaderTraceID))
}

func TestRequestIDMiddlewarePropagates(t *testing.T) {
	var captured [2]string
	router := newRouter(&captured)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-abc")
	req.Header.Set(HeaderTraceID, "trace-xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-abc", captured[0])
	assert.Equal(t, "trace-xyz", captured[1])
	assert.Equal(t, "req-abc", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "trace-xyz", w.Header().Get(HeaderTraceID))
}
