package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger creates a quiet logger for tests. WARN level by default;
// set TEST_DEBUG to see debug records.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("TEST_DEBUG") != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
