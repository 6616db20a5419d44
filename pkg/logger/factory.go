package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the stdout handler.
type Options struct {
	// Output defaults to os.Stdout.
	Output io.Writer
	// Level defaults to slog.LevelInfo.
	Level slog.Leveler
	// Text switches from JSON to the human readable text format.
	Text bool
}

// New creates a JSON-formatted logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithOptions(Options{}, extractors...)
}

// NewDevelopment logs text at debug level, for local runs.
func NewDevelopment(extractors ...ContextExtractor) *slog.Logger {
	return NewWithOptions(Options{Level: slog.LevelDebug, Text: true}, extractors...)
}

// NewWithOptions creates a logger writing to opts.Output.
func NewWithOptions(opts Options, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(opts.handler(), extractors...))
}

func (o Options) handler() slog.Handler {
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	level := o.Level
	if level == nil {
		level = slog.LevelInfo
	}

	ho := &slog.HandlerOptions{Level: level}
	if o.Text {
		return slog.NewTextHandler(out, ho)
	}
	return slog.NewJSONHandler(out, ho)
}

// NewNope returns a logger that drops every record. It is the default
// of an App created without a logger option.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
