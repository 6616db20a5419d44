package middlewares_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/pkg/logger"
	"github.com/dmitrymomot/simplefw/pkg/route"
)

// testContext implements the parts of internal.Context the middlewares
// touch. Calling anything else panics on the nil embedded interface.
type testContext struct {
	internal.Context

	request  *http.Request
	response *internal.ResponseWriter
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{request: r, response: internal.NewResponseWriter(w)}
}

func (c *testContext) Request() *http.Request                   { return c.request }
func (c *testContext) Response() http.ResponseWriter            { return c.response }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context                 { return c.request.Context() }
func (c *testContext) Header(name string) string                { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)             { c.response.Header().Set(name, value) }
func (c *testContext) Written() bool                            { return c.response.Written() }
func (c *testContext) LogDebug(string, ...any)                  {}
func (c *testContext) LogInfo(string, ...any)                   {}
func (c *testContext) LogWarn(string, ...any)                   {}
func (c *testContext) LogError(string, ...any)                  {}

func (c *testContext) Route() *route.Route {
	r := route.FromRequest(c.request)
	return &r
}

func (c *testContext) IsAPI() bool { return c.Route().IsAPI }

func (c *testContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any { return c.request.Context().Value(key) }

func (c *testContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

// routes adapts a function to internal.Handler.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// newApp serves h on every path behind the given middlewares.
func newApp(h internal.HandlerFunc, mw []internal.Middleware, opts ...internal.Option) *internal.App {
	opts = append([]internal.Option{
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Any("/", h)
			r.Any("/*", h)
		})),
	}, opts...)
	return internal.New(opts...)
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newBufferLogger(buf io.Writer, extractors ...logger.ContextExtractor) *slog.Logger {
	return logger.NewWithOptions(logger.Options{Output: buf, Level: slog.LevelDebug}, extractors...)
}
