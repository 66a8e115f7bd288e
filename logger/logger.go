// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ContextKey is the type of context keys read by WithContext.
type ContextKey string

const (
	// RequestIDKey carries the id of the HTTP request being served.
	RequestIDKey ContextKey = "request_id"
	// DraftKey carries the id of the draft being edited.
	DraftKey ContextKey = "draft_id"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs a stderr logger as the slog default and returns it.
// Stdout is left to command output.
func Init(cfg Config) *slog.Logger {
	l := New(os.Stderr, cfg)
	slog.SetDefault(l)
	return l
}

// WithContext returns the default logger annotated with the ids found in ctx.
func WithContext(ctx context.Context) *slog.Logger {
	return Annotate(slog.Default(), ctx)
}

// Annotate returns l with the ids found in ctx attached.
func Annotate(l *slog.Logger, ctx context.Context) *slog.Logger {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		l = l.With("request_id", id)
	}
	if id, ok := ctx.Value(DraftKey).(string); ok && id != "" {
		l = l.With("draft_id", id)
	}
	return l
}
