// Package logger provides structured logging for readease.
//
// Library packages log at debug level only; the CLI decides what reaches
// the terminal through Init.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

func init() {
	defaultLogger = newLogger(Options{})
}

// Options configures the logger.
type Options struct {
	Debug  bool         // Enable debug level logging
	Quiet  bool         // Only show errors
	JSON   bool         // Output as JSON
	Output io.Writer    // Output destination (default: stderr)
	Logger *slog.Logger // Custom logger (overrides all other options)
}

// Init replaces the package logger.
func Init(opts Options) {
	l := newLogger(opts)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

// SetLogger sets a custom slog.Logger, e.g. an application's own.
func SetLogger(l *slog.Logger) {
	Init(Options{Logger: l})
}

func newLogger(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}

	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Debug:
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger { return current().With(args...) }

// Enabled reports whether level would be logged.
func Enabled(level slog.Level) bool {
	return current().Enabled(context.Background(), level)
}

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	current().WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, args...)
}
