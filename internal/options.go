package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/simplefw/pkg/cookie"
	"github.com/dmitrymomot/simplefw/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles serves subDir of fsys under pattern. Directory listings
// are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	simplefw.New(
//	    simplefw.WithStaticFiles("/public/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		prefix := strings.TrimSuffix(pattern, "/")
		fileServer := http.StripPrefix(prefix, http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithViews enables Context.View and the error pages.
func WithViews(v Views) Option {
	return func(a *App) {
		a.views = v
	}
}

// WithViewData adds a value every view receives under key.
func WithViewData(key string, value any) Option {
	return func(a *App) {
		a.viewData[key] = value
	}
}

// WithAppName sets the AppName every view receives.
func WithAppName(name string) Option {
	return WithViewData(ViewAppName, name)
}

// WithMenu sets the navigation items every view receives as Menu.
func WithMenu(items any) Option {
	return WithViewData(ViewMenu, items)
}

// WithDevelopmentMode exposes error details in error responses.
func WithDevelopmentMode(enabled bool) Option {
	return func(a *App) {
		a.development = enabled
	}
}

// WithMetrics serves the metrics gathered by g at path.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	simplefw.New(
//	    simplefw.WithMiddleware(middlewares.Metrics(reg)),
//	    simplefw.WithMetrics("/metrics", reg),
//	)
func WithMetrics(path string, g prometheus.Gatherer) Option {
	return func(a *App) {
		if path == "" {
			path = "/metrics"
		}
		if g == nil {
			g = prometheus.DefaultGatherer
		}
		a.metricsPath = path
		a.metricsHandler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
}

// WithErrorHandler replaces the default error handler.
//
// Example:
//
//	simplefw.WithErrorHandler(func(c simplefw.Context, err error) error {
//	    return c.String(http.StatusInternalServerError, err.Error())
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the handler for requests no route matches.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints.
// Liveness (/health/live) answers OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	simplefw.WithHealthChecks(
//	    simplefw.WithReadinessCheck("database", db.Healthcheck(conn.DB)),
//	    simplefw.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a JSON logger tagged with a component name.
// Extractors pull values such as the request ID from the context.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions configures the cookie manager. Without a secret an
// ephemeral one is generated at startup.
//
// Example:
//
//	simplefw.New(
//	    simplefw.WithCookieOptions(
//	        cookie.WithSecret(cfg.Security.CookieSecret),
//	        cookie.WithSecure(true),
//	    ),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}
