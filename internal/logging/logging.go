// Package logging configures the bridge's file logger. Standard output
// carries the native messaging protocol, so log output may only ever go to
// a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config is passed explicitly at startup; there is no environment-driven
// logging singleton.
type Config struct {
	File  string
	Level string
}

// New opens the log file and returns a structured logger plus a close
// func. The log directory is created user-only; log lines may name
// profiles and expiry times but never credential values.
func New(cfg Config) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return slog.New(handler), f.Close, nil
}

// Discard returns a logger that drops everything; used by tests and by
// commands that print to the terminal anyway.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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
