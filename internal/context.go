package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/simplefw/pkg/cookie"
	"github.com/dmitrymomot/simplefw/pkg/route"
)

// maxJSONBody bounds request bodies read by BindJSON.
const maxJSONBody = 1 << 20

// Keys of the data every view receives.
const (
	ViewAppName = "AppName"
	ViewMenu    = "Menu"
	ViewFlashes = "Flashes"
	ViewRoute   = "Route"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// routeKey stores the parsed route in the request context.
type routeKey struct{}

// Context provides request/response access and controller helpers.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter; empty when missing.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the posted form value by name.
	Form(name string) string

	Header(name string) string
	SetHeader(name, value string)

	// Route returns the conventional route of the request.
	// It is parsed once and cached in the request context.
	Route() *route.Route

	// Arg returns the i-th route parameter, or "" when there is none.
	Arg(i int) string

	// IsAPI reports whether the request targets an /api route.
	IsAPI() bool

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error

	// RedirectTo redirects with 302 Found to route.URL(args...).
	RedirectTo(args ...string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// APIError writes {"message": msg} with the given status code.
	APIError(code int, msg string) error

	// Render writes a component as HTML with the given status code.
	Render(code int, component Component) error

	// View renders the named page inside the layout. The app name, the
	// menu, the pending flashes and the route are added to data.
	View(code int, name string, data map[string]any) error

	// BindJSON decodes the request body into dst.
	// Malformed bodies return a 400 HTTPError.
	BindJSON(dst any) error

	// AddFlash queues a message shown on the next rendered page.
	AddFlash(kind, msg string)

	// Flashes returns the messages received from the previous request
	// followed by the ones queued during this one, and consumes them.
	Flashes() []cookie.Message

	// Written returns true if a response has already been written.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context; nil when missing.
	Get(key any) any

	// SetContext replaces the request context, for example with one that
	// carries a deadline.
	SetContext(ctx context.Context)

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	DeleteCookie(name string)
	CookieSigned(name string) (string, error)
	SetCookieSigned(name, value string, maxAge int) error
	CookieEncrypted(name string) (string, error)
	SetCookieEncrypted(name, value string, maxAge int) error

	// ResponseWriter returns the wrapped writer shared by the whole chain.
	ResponseWriter() *ResponseWriter
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	app            *App

	// flash state
	incoming     []cookie.Message
	pending      []cookie.Message
	flashesRead  bool
	flashHookSet bool
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request:        r,
		responseWriter: NewResponseWriter(w),
		app:            app,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) Route() *route.Route {
	if r, ok := c.Get(routeKey{}).(*route.Route); ok {
		return r
	}
	r := route.FromRequest(c.request)
	c.Set(routeKey{}, &r)
	return &r
}

func (c *requestContext) Arg(i int) string {
	return c.Route().Param(i)
}

func (c *requestContext) IsAPI() bool {
	return c.Route().IsAPI
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := c.responseWriter.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) RedirectTo(args ...string) error {
	return c.Redirect(http.StatusFound, route.URL(args...))
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) APIError(code int, msg string) error {
	return c.JSON(code, APIErrorBody{Message: msg})
}

func (c *requestContext) Render(code int, component Component) error {
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return component.Render(c.request.Context(), c.responseWriter)
}

func (c *requestContext) View(code int, name string, data map[string]any) error {
	if c.app.views == nil {
		return ErrViewsNotConfigured
	}

	merged := make(map[string]any, len(c.app.viewData)+len(data)+2)
	maps.Copy(merged, c.app.viewData)
	merged[ViewRoute] = c.Route()
	merged[ViewFlashes] = c.Flashes()
	maps.Copy(merged, data)

	return c.Render(code, c.app.views.Component(name, merged))
}

func (c *requestContext) BindJSON(dst any) error {
	body := http.MaxBytesReader(c.responseWriter, c.request.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrBadRequest("empty request body", WithError(err))
		}
		return ErrBadRequest("invalid JSON body", WithError(err))
	}
	return nil
}

func (c *requestContext) AddFlash(kind, msg string) {
	c.pending = append(c.pending, cookie.Message{Kind: kind, Text: msg})
	if c.flashHookSet {
		return
	}
	c.flashHookSet = true
	c.responseWriter.OnBeforeWrite(func() {
		if len(c.pending) == 0 {
			return
		}
		// Unread messages from the previous request are carried over.
		msgs := c.pending
		if !c.flashesRead {
			c.flashesRead = true
			incoming, _ := c.app.cookieManager.Messages(c.responseWriter, c.request)
			msgs = append(incoming, msgs...)
		}
		if err := c.app.cookieManager.SetMessages(c.responseWriter, msgs); err != nil {
			c.LogWarn("failed to store flash messages", slog.Any("error", err))
		}
	})
}

func (c *requestContext) Flashes() []cookie.Message {
	if !c.flashesRead {
		c.flashesRead = true
		msgs, err := c.app.cookieManager.Messages(c.responseWriter, c.request)
		if err != nil {
			c.LogWarn("failed to read flash messages", slog.Any("error", err))
		}
		c.incoming = msgs
	}

	out := make([]cookie.Message, 0, len(c.incoming)+len(c.pending))
	out = append(out, c.incoming...)
	out = append(out, c.pending...)
	c.incoming = nil
	c.pending = nil
	return out
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.app.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.app.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.app.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.app.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.app.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) SetContext(ctx context.Context) {
	if ctx != nil {
		c.request = c.request.WithContext(ctx)
	}
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.app.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.app.cookieManager.Set(c.responseWriter, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.app.cookieManager.Delete(c.responseWriter, name)
}

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.app.cookieManager.GetSigned(c.request, name)
}

func (c *requestContext) SetCookieSigned(name, value string, maxAge int) error {
	return c.app.cookieManager.SetSigned(c.responseWriter, name, value, maxAge)
}

func (c *requestContext) CookieEncrypted(name string) (string, error) {
	return c.app.cookieManager.GetEncrypted(c.request, name)
}

func (c *requestContext) SetCookieEncrypted(name, value string, maxAge int) error {
	return c.app.cookieManager.SetEncrypted(c.responseWriter, name, value, maxAge)
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}
