// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, a CI-aware handler, and request-scoped loggers carried
// in a context.Context.
package logger
