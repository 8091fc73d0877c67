// Package logging builds the process logger and a repeat-suppressing error logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger on stdout and installs it as the slog default.
func New(logFormat, logLevel string) *slog.Logger {
	logger := NewWithWriter(os.Stdout, logFormat, logLevel)

	slog.SetDefault(logger)

	return logger
}

// NewWithWriter builds a json (default) or text logger writing to w.
func NewWithWriter(w io.Writer, logFormat, logLevel string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}

	if strings.EqualFold(logFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps debug, warn and error to their slog levels. Anything else is info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
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
