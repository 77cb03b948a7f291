// Package observability provides logging initialization.
package observability

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"businessCard/internal/config"
)

// InitSlog builds a logger writing to stderr. Format "auto" picks text on a
// terminal and JSON otherwise.
func InitSlog(cfg config.LogConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg, term.IsTerminal(int(os.Stderr.Fd())))
}

func newLogger(w io.Writer, cfg config.LogConfig, tty bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: toLogLevel(cfg.Level)}
	var handler slog.Handler
	switch {
	case cfg.Format == "json", cfg.Format != "text" && !tty:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func toLogLevel(lvl string) slog.Level {
	switch lvl {
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
