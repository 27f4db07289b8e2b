package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger described by the log section.
// Validate the config first; unknown values fall back to info/text.
func NewLogger(w io.Writer, section LogSection) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(section.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if section.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
