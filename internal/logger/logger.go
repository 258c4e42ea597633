// Package logger configures structured logging with log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by DefaultConfig.
const (
	EnvLevel  = "EQSCOPE_LOG_LEVEL"
	EnvFormat = "EQSCOPE_LOG_FORMAT"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a configured slog.Logger.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses DEBUG, INFO, WARN/WARNING or ERROR, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// DefaultConfig returns the default configuration: INFO level, text format,
// overridden by EQSCOPE_LOG_LEVEL and EQSCOPE_LOG_FORMAT. Unknown values
// are ignored.
func DefaultConfig() Config {
	cfg := Config{Level: slog.LevelInfo, Format: "text"}

	if lvl, err := ParseLevel(os.Getenv(EnvLevel)); err == nil {
		cfg.Level = lvl
	}
	if strings.EqualFold(os.Getenv(EnvFormat), "json") {
		cfg.Format = "json"
	}

	return cfg
}
