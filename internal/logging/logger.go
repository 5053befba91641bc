// Package logging builds the structured logger shared by the pendsim
// commands. It wraps log/slog with levels and formats taken from the
// environment.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// LevelEnv selects the minimum level: DEBUG, INFO, WARN or ERROR.
	LevelEnv = "PENDSIM_LOG_LEVEL"
	// FormatEnv selects "json" output; anything else gives text.
	FormatEnv = "PENDSIM_LOG_FORMAT"
)

// New returns a logger writing to w at the level named by PENDSIM_LOG_LEVEL
// (WARN when unset, so batch output on stdout stays clean).
func New(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv()}
	if strings.EqualFold(os.Getenv(FormatEnv), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Default logs to stderr.
func Default() *slog.Logger {
	return New(os.Stderr)
}

func levelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// ParseLevel maps a level name to a slog level, defaulting to WARN.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
