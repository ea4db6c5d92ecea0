// Package logging builds the slog logger used across dash. Output goes to a
// log file by default so it never interleaves with terminal rendering.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log destinations with special meaning.
const (
	Stderr = "-"
	Off    = ""
)

// Levels lists the accepted level names.
var Levels = []string{"debug", "info", "warn", "error"}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel parses a log level string into slog.Level. An empty string is
// info.
func ParseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (want one of %s)", levelStr, strings.Join(Levels, ", "))
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError)
}

// Open returns a logger appending to path. The returned closer must be
// called on exit. path "-" logs to stderr and Off discards.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	switch path {
	case Stderr:
		return New(os.Stderr, level), nopCloser{}, nil
	case Off:
		return Discard(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // log readable by owner and group
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}
