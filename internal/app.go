package internal

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/simplefw/pkg/cookie"
	"github.com/dmitrymomot/simplefw/pkg/health"
	"github.com/dmitrymomot/simplefw/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Views renders named pages. *view.Engine implements it.
type Views interface {
	Component(name string, data any) templ.Component
	Has(name string) bool
}

// App orchestrates the application lifecycle.
// App is immutable after creation; all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	cookieManager           *cookie.Manager
	views                   Views
	viewData                map[string]any
	metricsPath             string
	metricsHandler          http.Handler
	development             bool
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := simplefw.New(
//	    simplefw.WithMiddleware(middlewares.Recover(), middlewares.RequestID()),
//	    simplefw.WithViews(views),
//	    simplefw.WithHandlers(simplefw.NewDispatcher(...)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:   chi.NewRouter(),
		logger:   logger.NewNope(),
		viewData: make(map[string]any),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.cookieManager == nil || !a.cookieManager.HasSecret() {
		a.cookieManager = cookie.New(cookie.WithEphemeralSecret())
		a.logger.Warn("no cookie secret configured, flash messages will not survive a restart")
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(cfg.Runtime.Address,
//	    simplefw.Logger(log),
//	    simplefw.ShutdownHook(db.Shutdown(conn)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if addr != "" {
		cfg.address = addr
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks,
			health.WithTimeout(a.healthConfig.timeout),
			health.WithLogger(a.logger),
		))
	}

	if a.metricsHandler != nil {
		a.router.Handle(a.metricsPath, a.metricsHandler)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogError("error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr))
		}
		return
	}
	if herr := a.defaultErrorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.Any("error", herr))
	}
}

// defaultErrorHandler answers API routes with {"message"} JSON, web routes
// with the "error/<code>" view when one exists, and plain text otherwise.
// Error details are only exposed in development mode.
func (a *App) defaultErrorHandler(c Context, err error) error {
	httpErr := AsHTTPError(err)
	if httpErr == nil {
		httpErr = ErrInternal(http.StatusText(http.StatusInternalServerError), WithError(err))
	}

	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", httpErr.Code),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
	} else {
		c.LogDebug("request rejected",
			slog.Int("status", httpErr.Code),
			slog.String("path", c.Request().URL.Path),
			slog.String("message", httpErr.Message),
		)
	}

	detail := httpErr.Detail
	if a.development && httpErr.Err != nil {
		detail = httpErr.Err.Error()
	}
	if !a.development && httpErr.Code >= http.StatusInternalServerError {
		detail = ""
	}

	if c.IsAPI() {
		msg := httpErr.Message
		if a.development && detail != "" {
			msg += ": " + detail
		}
		return c.APIError(httpErr.Code, msg)
	}

	page := "error/" + strconv.Itoa(httpErr.Code)
	if a.views != nil && a.views.Has(page) {
		title := httpErr.Title
		if title == "" {
			title = httpErr.StatusText()
		}
		return c.View(httpErr.Code, page, map[string]any{
			"Title":       title,
			"Code":        httpErr.Code,
			"Message":     httpErr.Message,
			"Detail":      detail,
			"Development": a.development,
		})
	}

	msg := httpErr.Message
	if detail != "" {
		msg += "\n\n" + detail
	}
	http.Error(c.Response(), msg, httpErr.Code)
	return nil
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessTimeout bounds the readiness probe run.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		c.timeout = d
	}
}

// WithReadinessCheck adds a named readiness check.
//
// Example:
//
//	simplefw.WithReadinessCheck("database", db.Healthcheck(conn.DB))
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		if fn != nil {
			c.checks[name] = fn
		}
	}
}
