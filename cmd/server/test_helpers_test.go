package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration using the in-memory driver.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               8080,
			LogLevel:           "debug",
			ShutdownTimeout:    time.Second,
			ReadTimeout:        5 * time.Second,
			WriteTimeout:       5 * time.Second,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{
			Driver: config.DriverMemory,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer starts an httptest.Server around the full router backed by
// an in-memory task store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := discardLogger()
	app, err := newApplicationWithStore(testConfig(), logger, memory.NewTaskStore(logger), nil)
	require.NoError(t, err)

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return server
}

// send performs a request against the test server and returns the response.
func send(t *testing.T, server *httptest.Server, method, path, contentType, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
