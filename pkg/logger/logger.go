// Package logger provides the service's levelled structured logger built on
// log/slog.
//
// Handlers should log through WithCtx so every line carries the request and
// transaction ids injected by the logging middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("helmet added", "name", name)
//	// → time=... level=INFO msg="helmet added" request_id=... transaction_id=... name=...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/helmet-store/config"
)

var L *slog.Logger

func init() {
	L = slog.New(NewHandler(os.Stdout, config.AppEnv()))
	slog.SetDefault(L)
}

// NewHandler returns the stdout handler for env: JSON at INFO in production,
// text at DEBUG everywhere else.
func NewHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// SetHandler replaces the base logger. Used at boot to attach extra sinks.
func SetHandler(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request logger stored in ctx, or the base logger when
// none was injected.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log into ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
