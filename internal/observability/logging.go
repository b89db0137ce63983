package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a JSON logger with a component field attached.
func NewLogger(component string) *slog.Logger {
	return newLogger(os.Stdout, slog.LevelInfo, component)
}

// NewLoggerWithLevel is NewLogger at the named level ("debug", "info",
// "warn", "error"). Unknown names fall back to info.
func NewLoggerWithLevel(component, level string) *slog.Logger {
	return newLogger(os.Stdout, parseLevel(level), component)
}

func newLogger(w io.Writer, level slog.Level, component string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	if component != "" {
		logger = logger.With("component", component)
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
