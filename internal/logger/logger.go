// Package logger configures structured logging for the API process.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a structured logger from LOG_LEVEL and LOG_FORMAT.
//
// LOG_LEVEL options: debug, info, warn, error (default: info)
// LOG_FORMAT options: json, text (default: json, or text when dev is true)
func New(dev bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	format := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if format == "" && dev {
		format = "text"
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// Obscure masks the middle of a sensitive value so it can be logged without
// leaking it. Values shorter than 10 characters are returned as-is.
func Obscure(s string) string {
	if len(s) < 10 {
		return s
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
