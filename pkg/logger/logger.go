// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns a logger pre-tagged with the request ID injected by the
// Logger middleware, so every log line from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "product_id", p.ID)
//	// → time=... level=INFO msg="product created" request_id=a1b2c3d4 product_id=7
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/product-catalog/api/config"
)

var L *slog.Logger

func init() {
	opts := &slog.HandlerOptions{}

	var handler slog.Handler
	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
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
