package middlewares

import (
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/simplefw/internal"
)

// AccessLogOption configures the access log middleware.
type AccessLogOption func(*accessLogConfig)

type accessLogConfig struct {
	skip []string
}

// WithAccessLogSkipPaths leaves the given paths out of the log, typically
// health probes and the metrics endpoint.
func WithAccessLogSkipPaths(paths ...string) AccessLogOption {
	return func(cfg *accessLogConfig) {
		cfg.skip = append(cfg.skip, paths...)
	}
}

// AccessLog writes one record per request with its route, status, size and
// duration. Server errors are logged at error level, client errors at warn.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &accessLogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if slices.Contains(cfg.skip, c.Request().URL.Path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			status := responseStatus(c, err)

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("controller", controllerLabel(c)),
				slog.Int("status", status),
				slog.Int64("size", c.ResponseWriter().Size()),
				slog.Duration("duration", time.Since(start)),
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
