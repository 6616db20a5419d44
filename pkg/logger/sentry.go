package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration. It decodes from the
// Sentry section of appconf.json.
type SentryConfig struct {
	DSN         string `mapstructure:"DSN"`
	Environment string `mapstructure:"Environment"`
	// MinLevel is the lowest level stored as a Sentry log entry.
	// Errors always create issues.
	MinLevel slog.Level `mapstructure:"-"`
}

// NewWithSentry logs to stdout and to Sentry. An empty DSN or a failed
// Sentry init leaves stdout only.
func NewWithSentry(cfg SentryConfig, opts Options, extractors ...ContextExtractor) *slog.Logger {
	stdout := opts.handler()

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(stdout, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{stdout, sentryHandler}, extractors...))
}
