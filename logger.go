package seed

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
)

// NewLogger returns a logr.Logger writing text to w. Info is always
// written; each step of verbosity reveals one more V level.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	if w == nil {
		w = os.Stderr
	}

	return logr.FromSlogHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.Level(int(slog.LevelInfo) - verbosity),
	}))
}

func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}

// LoggerFrom returns the logger in ctx, or a logger that discards
// everything.
func LoggerFrom(ctx context.Context) logr.Logger {
	if log, err := logr.FromContext(ctx); err == nil {
		return log
	}

	return logr.Discard()
}
