package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// newHTTPServer builds the http.Server for the configured port and timeouts.
func (app *application) newHTTPServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
	}
}

// startHTTPServer binds the listener and serves requests until shutdown.
// It returns an error only if the port could not be bound.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) (int, error) {
	server := app.newHTTPServer(router)

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return 1, fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}

	app.logger.Info("Starting server", slog.Int("port", app.config.Server.Port))
	return app.serve(ctx, server, listener), nil
}

// serve runs server on listener and blocks until a termination signal arrives,
// ctx is cancelled, or Serve fails. Shutdown closes the server and releases
// application resources. A Serve failure always yields a non-zero exit code.
func (app *application) serve(ctx context.Context, server *http.Server, listener net.Listener) int {
	trigger, stop := context.WithCancel(ctx)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", slog.String("error", redact.Error(err)))
			serveErr <- err
			stop()
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		trigger,
		app.config.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"tasks-api": func(ctx context.Context) error {
				app.logger.Info("Shutting down server...")
				err := server.Shutdown(ctx)
				app.cleanup()
				return err
			},
		},
	)

	exitCode := <-wait
	select {
	case <-serveErr:
		exitCode = 1
	default:
	}

	app.logger.Info("Server shutdown completed", slog.Int("exit_code", exitCode))
	return exitCode
}
