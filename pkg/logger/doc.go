// Package logger builds slog loggers for the framework and its applications.
//
// Every logger wraps its handler in a ContextHandler, which appends the
// attributes returned by context extractors to each record. The framework
// registers the request ID extractor this way:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "contact saved", slog.Int64("contact_id", id))
//	// {"level":"INFO","msg":"contact saved","contact_id":7,"request_id":"..."}
//
// NewDevelopment writes text at debug level. NewWithOptions takes an explicit
// output, level and format.
//
// NewWithSentry additionally forwards warnings and errors to Sentry. Errors
// become issues. When the DSN is empty the logger writes to stdout only, so
// the same wiring works locally:
//
//	log := logger.NewWithSentry(
//		logger.SentryConfig{DSN: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment},
//		logger.Options{Level: logger.ParseLevel(cfg.Logging.Level)},
//	)
//
// NewNope discards everything and is meant for tests.
package logger
