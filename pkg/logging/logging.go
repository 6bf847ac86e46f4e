// Package logging configures the zerolog logger shared by the CLI and the server.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (json or console)
	Format string

	// Output is where to write logs (stderr, stdout, discard or a file path)
	Output string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

var (
	mu            sync.RWMutex
	defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	defaultOutput io.Closer = nopCloser{}
)

// New creates a logger from cfg. A file output that cannot be opened falls back to stderr.
// The returned closer releases the log file; it is a no-op for the standard streams.
func New(cfg *Config) (zerolog.Logger, io.Closer) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out, closer := writer(cfg.Output)
	var w io.Writer = out
	if strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
	}

	logger := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	return logger, closer
}

// Configure replaces the default logger, closing the output of the previous one.
func Configure(cfg *Config) zerolog.Logger {
	logger, closer := New(cfg)

	mu.Lock()
	previous := defaultOutput
	defaultLogger = logger
	defaultOutput = closer
	mu.Unlock()

	_ = previous.Close()
	return logger
}

// Close closes the default logger's output and falls back to stderr.
func Close() error {
	mu.Lock()
	closer := defaultOutput
	defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	defaultOutput = nopCloser{}
	mu.Unlock()
	return closer.Close()
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := defaultLogger
	return &l
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// FromContext returns the logger attached to ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return Default()
}

// ParseLevel converts a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func writer(output string) (io.Writer, io.Closer) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nopCloser{}
	case "stdout":
		return os.Stdout, nopCloser{}
	case "discard", "none":
		return io.Discard, nopCloser{}
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stderr, nopCloser{}
	}
	return f, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
