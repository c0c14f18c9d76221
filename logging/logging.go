// Package logging configures the structured logger shared by the poller and its triggers.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a logger writing to w. Format is either "json" (the default, suitable for
// Cloud Logging) or "text".
func New(w io.Writer, level, format string) *slog.Logger {
	options := slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		handler = slog.NewTextHandler(w, &options)
	default:
		handler = slog.NewJSONHandler(w, &options)
	}

	return slog.New(handler)
}

// Init creates a logger and installs it as the process default.
func Init(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a level name to the slog level, defaulting to INFO for anything unrecognised.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
