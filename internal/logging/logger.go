package logging

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a new structured logger with JSON output
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}

// NewTextLogger creates a new structured logger with text output for development
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewTextHandler(w, opts)
	return slog.New(handler)
}

// New creates a logger writing to w. format is "json" or "text"; unknown
// formats fall back to JSON and unknown levels to info.
func New(w io.Writer, format, level string) *slog.Logger {
	if strings.EqualFold(format, "text") {
		return NewTextLogger(w, ParseLevel(level))
	}
	return NewLogger(w, ParseLevel(level))
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(level string) slog.Level {
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
