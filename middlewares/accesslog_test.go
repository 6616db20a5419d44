package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/middlewares"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	handler := func(c internal.Context) error {
		if c.Route().Entity == "Broken" {
			return internal.ErrInternal("Internal Server Error")
		}
		return c.String(http.StatusOK, "hello")
	}

	t.Run("logs successful requests", func(t *testing.T) {
		t.Parallel()
		buf := &syncBuffer{}
		app := newApp(handler, []internal.Middleware{middlewares.AccessLog()},
			internal.WithCustomLogger(newBufferLogger(buf)))

		serve(app, httptest.NewRequest(http.MethodGet, "/category/edit/2", nil))

		out := buf.String()
		assert.Contains(t, out, `"level":"INFO"`)
		assert.Contains(t, out, `"path":"/category/edit/2"`)
		assert.Contains(t, out, `"controller":"CategoryController"`)
		assert.Contains(t, out, `"status":200`)
		assert.Contains(t, out, `"size":5`)
	})

	t.Run("server errors at error level", func(t *testing.T) {
		t.Parallel()
		buf := &syncBuffer{}
		app := newApp(handler, []internal.Middleware{middlewares.AccessLog()},
			internal.WithCustomLogger(newBufferLogger(buf)))

		serve(app, httptest.NewRequest(http.MethodGet, "/broken", nil))

		assert.Contains(t, buf.String(), `"msg":"request","method":"GET"`)
		assert.Contains(t, buf.String(), `"status":500`)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("skipped paths", func(t *testing.T) {
		t.Parallel()
		buf := &syncBuffer{}
		app := newApp(handler, []internal.Middleware{
			middlewares.AccessLog(middlewares.WithAccessLogSkipPaths("/health/live")),
		}, internal.WithCustomLogger(newBufferLogger(buf)))

		serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.NotContains(t, buf.String(), `"msg":"request"`)
	})
}
