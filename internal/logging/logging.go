// Package logging builds the process logger: a logrus backend exposed as
// a *slog.Logger so the rest of the code only depends on log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configure New.
type Options struct {
	// Level is a logrus level name ("debug", "info", "warn", ...).
	Level string
	// Format is "text" or "json".
	Format string
	// Output defaults to stderr.
	Output io.Writer
}

// New returns a slog logger backed by a fresh logrus logger.
func New(opts Options) (*slog.Logger, error) {
	logger, err := NewLogrus(opts)
	if err != nil {
		return nil, err
	}

	return slog.New(NewLogrusHandler(logger)), nil
}

// NewLogrus configures a logrus logger from opts.
func NewLogrus(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	if opts.Level != "" {
		level, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}

		logger.SetLevel(level)
	}

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q, expected text or json", opts.Format)
	}

	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or Discard() when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}

	return l
}
