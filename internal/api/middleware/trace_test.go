package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)

	var seenTraceID string
	handler := chimiddleware.RequestID(TraceMiddleware(log)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenTraceID = shared.GetTraceID(r.Context())
			logger.FromContext(r.Context()).Info("inside handler")
			w.WriteHeader(http.StatusTeapot)
		}),
	))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NotEmpty(t, seenTraceID)
	assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
	assert.Equal(t, http.StatusTeapot, w.Code)

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)

	var sawHandler, sawCompleted bool
	for _, entry := range entries {
		assert.Equal(t, seenTraceID, entry["trace_id"])
		assert.NotEmpty(t, entry["request_id"])
		switch entry["msg"] {
		case "inside handler":
			sawHandler = true
		case "request completed":
			sawCompleted = true
			assert.Equal(t, float64(http.StatusTeapot), entry["status"])
			assert.Equal(t, "/api/tasks", entry["path"])
		}
	}
	assert.True(t, sawHandler, "handler should log through the request-scoped logger")
	assert.True(t, sawCompleted, "completion should be logged")
}

func TestTraceMiddlewareDefaultsStatusToOK(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)

	handler := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/tasks/1", nil))

	logger.AssertLogField(t, logBuf, "status", float64(http.StatusOK))
}
