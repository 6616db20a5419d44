package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/middlewares"
)

func corsRequest(method, target, origin string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func preflight(target, origin string) *http.Request {
	req := corsRequest(http.MethodOptions, target, origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	return req
}

func TestCORS(t *testing.T) {
	t.Parallel()

	ok := func(c internal.Context) error { return c.String(http.StatusOK, "ok") }

	t.Run("no origin", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{middlewares.CORS()})

		rec := serve(app, corsRequest(http.MethodGet, "/api/category", ""))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("api request with wildcard", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{middlewares.CORS()})

		rec := serve(app, corsRequest(http.MethodGet, "/api/category", "https://a.example"))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("web pages are skipped by default", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{middlewares.CORS()})

		rec := serve(app, corsRequest(http.MethodGet, "/category", "https://a.example"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("all routes", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{middlewares.CORS(middlewares.WithCORSAllRoutes())})

		rec := serve(app, corsRequest(http.MethodGet, "/category", "https://a.example"))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		t.Parallel()
		called := false
		app := newApp(func(c internal.Context) error {
			called = true
			return c.NoContent(http.StatusMethodNotAllowed)
		}, []internal.Middleware{middlewares.CORS(middlewares.WithMaxAge(time.Hour))})

		rec := serve(app, preflight("/api/category/1", "https://a.example"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, called)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
		assert.Contains(t, strings.Join(rec.Header().Values("Vary"), ","), "Access-Control-Request-Method")
	})

	t.Run("plain options request reaches the handler", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{middlewares.CORS()})

		rec := serve(app, corsRequest(http.MethodOptions, "/api/category", "https://a.example"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("specific origins", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{
			middlewares.CORS(middlewares.WithAllowOrigins("https://app.example")),
		})

		rec := serve(app, corsRequest(http.MethodGet, "/api/category", "https://app.example"))
		assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = serve(app, corsRequest(http.MethodGet, "/api/category", "https://evil.example"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("origin func and credentials", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{
			middlewares.CORS(
				middlewares.WithAllowOriginFunc(func(origin string) bool {
					return strings.HasSuffix(origin, ".example")
				}),
				middlewares.WithAllowCredentials(),
				middlewares.WithExposeHeaders("X-Request-ID"),
			),
		})

		rec := serve(app, corsRequest(http.MethodGet, "/api/category", "https://b.example"))
		assert.Equal(t, "https://b.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("custom methods and headers", func(t *testing.T) {
		t.Parallel()
		app := newApp(ok, []internal.Middleware{
			middlewares.CORS(
				middlewares.WithAllowMethods(http.MethodGet),
				middlewares.WithAllowHeaders("X-Custom"),
			),
		})

		rec := serve(app, preflight("/api/category", "https://a.example"))
		assert.Equal(t, http.MethodGet, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "X-Custom", rec.Header().Get("Access-Control-Allow-Headers"))
	})
}
