package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	echo := func(c internal.Context) error {
		return c.String(http.StatusOK, middlewares.GetRequestID(c))
	}

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()
		app := newApp(echo, []internal.Middleware{middlewares.RequestID()})

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses the upstream id", func(t *testing.T) {
		t.Parallel()
		app := newApp(echo, []internal.Middleware{middlewares.RequestID()})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-1")
		rec := serve(app, req)
		assert.Equal(t, "upstream-1", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "upstream-1", rec.Body.String())
	})

	t.Run("ignores oversized upstream ids", func(t *testing.T) {
		t.Parallel()
		app := newApp(echo, []internal.Middleware{
			middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "generated" })),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
		rec := serve(app, req)
		assert.Equal(t, "generated", rec.Body.String())
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()
		app := newApp(echo, []internal.Middleware{
			middlewares.RequestID(
				middlewares.WithRequestIDHeaders("X-Trace"),
				middlewares.WithRequestIDResponseHeader("X-Trace"),
			),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "trace-7")
		rec := serve(app, req)
		assert.Equal(t, "trace-7", rec.Header().Get("X-Trace"))
		assert.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("missing middleware yields empty id", func(t *testing.T) {
		t.Parallel()
		app := newApp(echo, nil)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, rec.Body.String())
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	buf := &syncBuffer{}
	app := newApp(func(c internal.Context) error {
		c.LogInfo("handling")
		return c.NoContent(http.StatusNoContent)
	}, []internal.Middleware{middlewares.RequestID()},
		internal.WithCustomLogger(newBufferLogger(buf, middlewares.RequestIDExtractor())),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := serve(app, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
