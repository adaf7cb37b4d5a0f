package main

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServeTestApp returns an application whose store close calls are counted.
func newServeTestApp(t *testing.T, closed *atomic.Int32) *application {
	t.Helper()

	logger := discardLogger()
	closeStore := func() error {
		closed.Add(1)
		return nil
	}
	app, err := newApplicationWithStore(testConfig(), logger, memory.NewTaskStore(logger), closeStore)
	require.NoError(t, err)
	return app
}

func TestServeStopsWhenServeFails(t *testing.T) {
	var closed atomic.Int32
	app := newServeTestApp(t, &closed)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	done := make(chan int, 1)
	go func() {
		done <- app.serve(context.Background(), app.newHTTPServer(app.setupRouter()), listener)
	}()

	select {
	case exitCode := <-done:
		assert.Equal(t, 1, exitCode)
		assert.Equal(t, int32(1), closed.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listener failed")
	}
}

func TestServeShutsDownOnContextCancel(t *testing.T) {
	var closed atomic.Int32
	app := newServeTestApp(t, &closed)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := "http://" + listener.Addr().String() + "/health"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)
	go func() {
		done <- app.serve(ctx, app.newHTTPServer(app.setupRouter()), listener)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case exitCode := <-done:
		assert.Equal(t, 0, exitCode)
		assert.Equal(t, int32(1), closed.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}

	_, err = http.Get(url)
	assert.Error(t, err, "server should no longer accept connections")
}

func TestStartHTTPServerPortInUse(t *testing.T) {
	var closed atomic.Int32
	app := newServeTestApp(t, &closed)

	occupied, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer occupied.Close()
	app.config.Server.Port = occupied.Addr().(*net.TCPAddr).Port

	exitCode, err := app.startHTTPServer(context.Background(), app.setupRouter())
	assert.Equal(t, 1, exitCode)
	assert.ErrorContains(t, err, "failed to listen")
	assert.Equal(t, int32(0), closed.Load())
}
