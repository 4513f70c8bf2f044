package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	buf, base := logger.SetupTestLogger(t)

	var traceID string
	var ctxLogger *slog.Logger
	handler := NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		ctxLogger = logger.FromContextOrDefault(r.Context(), nil)
		ctxLogger.Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, traceID)
	require.NotNil(t, ctxLogger)
	logger.AssertLogField(t, buf, "trace_id", traceID)
	logger.AssertLogContains(t, buf, "request started")
}

func TestTraceMiddlewareNilLogger(t *testing.T) {
	handler := NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, shared.GetTraceID(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRequestLogger(t *testing.T) {
	buf, base := logger.SetupTestLogger(t)

	handler := NewTraceMiddleware(base)(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Task not found"}`))
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tasks/9", nil))

	logger.AssertLogContains(t, buf, "request completed")
	logger.AssertLogField(t, buf, "status", float64(http.StatusNotFound))
	logger.AssertLogField(t, buf, "path", "/tasks/9")
	logger.AssertLogField(t, buf, "method", http.MethodDelete)
}

func TestRequestLoggerDefaultsStatus(t *testing.T) {
	buf, base := logger.SetupTestLogger(t)

	handler := NewTraceMiddleware(base)(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	logger.AssertLogField(t, buf, "status", float64(http.StatusOK))
}
