// Package logger builds the application's *slog.Logger.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
package logger

import (
	"io"
	"log/slog"
)

// Setup returns a *slog.Logger configured for the given environment,
// writing to w.
func Setup(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
