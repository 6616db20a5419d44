package simplefw

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/pkg/cookie"
	"github.com/dmitrymomot/simplefw/pkg/logger"
	"github.com/dmitrymomot/simplefw/pkg/route"
)

// Type aliases - public API
type (
	// App orchestrates routing, views and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and controller helpers.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature of controller actions and route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	Option       = internal.Option
	RunOption    = internal.RunOption
	HealthOption = internal.HealthOption

	// Component is anything that renders HTML, templ.Component included.
	Component = internal.Component

	// Views renders named pages; *view.Engine implements it.
	Views = internal.Views

	// ResponseWriter wraps http.ResponseWriter with status tracking and hooks.
	ResponseWriter = internal.ResponseWriter

	// Dispatcher resolves controllers by naming convention.
	Dispatcher = internal.Dispatcher

	DispatcherOption  = internal.DispatcherOption
	ControllerFactory = internal.ControllerFactory
	RepositoryFactory = internal.RepositoryFactory

	// APIController serves the JSON routes under /api.
	APIController = internal.APIController

	// Route is the parsed form of a request path.
	Route = route.Route

	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption
	APIErrorBody    = internal.APIErrorBody

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	CookieOption = cookie.Option

	// FlashMessage is one flash message shown by the layout.
	FlashMessage = cookie.Message
)

// Flash kinds.
const (
	FlashInfo    = cookie.FlashInfo
	FlashSuccess = cookie.FlashSuccess
	FlashWarning = cookie.FlashWarning
	FlashDanger  = cookie.FlashDanger
)

// New creates an application.
//
//	app := simplefw.New(
//	    simplefw.WithViews(views),
//	    simplefw.WithHandlers(simplefw.NewDispatcher(...)),
//	)
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Dispatcher

// NewDispatcher creates the convention-based router.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	return internal.NewDispatcher(opts...)
}

// WithController registers a controller under its conventional name.
func WithController(name string, f ControllerFactory) DispatcherOption {
	return internal.WithController(name, f)
}

// WithRepository registers a repository under its conventional name.
func WithRepository(name string, f RepositoryFactory) DispatcherOption {
	return internal.WithRepository(name, f)
}

// ControllerFor adapts a typed controller constructor.
//
//	simplefw.WithController("CategoryController", simplefw.ControllerFor(controllers.NewCategory))
func ControllerFor[R any](f func(R) any) ControllerFactory {
	return internal.ControllerFor(f)
}

// App options

func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

func WithViews(v Views) Option {
	return internal.WithViews(v)
}

func WithViewData(key string, value any) Option {
	return internal.WithViewData(key, value)
}

func WithAppName(name string) Option {
	return internal.WithAppName(name)
}

func WithMenu(items any) Option {
	return internal.WithMenu(items)
}

func WithDevelopmentMode(enabled bool) Option {
	return internal.WithDevelopmentMode(enabled)
}

func WithMetrics(path string, g prometheus.Gatherer) Option {
	return internal.WithMetrics(path, g)
}

func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// Health options

func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

func Address(addr string) RunOption {
	return internal.Address(addr)
}

func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Cookie options

func WithCookieSecret(secret string) CookieOption {
	return cookie.WithSecret(secret)
}

func WithCookieSecure(secure bool) CookieOption {
	return cookie.WithSecure(secure)
}

func WithCookieSameSite(ss http.SameSite) CookieOption {
	return cookie.WithSameSite(ss)
}

// Errors

func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

var (
	ErrViewsNotConfigured = internal.ErrViewsNotConfigured
	ErrNotAPIController   = internal.ErrNotAPIController
)

// Helpers

// Scalar lists the types Arg, Param and Query convert to, named types
// included.
type Scalar = internal.Scalar

// URL builds a conventional route path: URL("category", "edit", "3").
func URL(args ...string) string {
	return route.URL(args...)
}

// ContextValue returns the typed value stored under key, or the zero value.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Arg returns the i-th route parameter converted to T.
//
//	id := simplefw.Arg[int64](c, 0)
func Arg[T Scalar](c Context, i int) T {
	return internal.Arg[T](c, i)
}

// Param returns a chi URL parameter converted to T.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a query parameter converted to T.
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a query parameter converted to T, or defaultValue.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}
