package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast handler completes", func(t *testing.T) {
		t.Parallel()
		app := newApp(func(c internal.Context) error {
			_, ok := c.Deadline()
			return c.String(http.StatusOK, strconv.FormatBool(ok))
		}, []internal.Middleware{middlewares.Timeout(time.Second)})

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Body.String())
	})

	t.Run("slow handler gets 503", func(t *testing.T) {
		t.Parallel()
		app := newApp(func(c internal.Context) error {
			<-c.Done()
			return nil
		}, []internal.Middleware{middlewares.Timeout(20 * time.Millisecond)})

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "Request timeout")
	})

	t.Run("error handler sees TimeoutError", func(t *testing.T) {
		t.Parallel()

		seen := make(chan bool, 1)
		app := newApp(func(c internal.Context) error {
			<-c.Done()
			return nil
		}, []internal.Middleware{middlewares.Timeout(20 * time.Millisecond)},
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				te, ok := middlewares.AsTimeoutError(err)
				seen <- ok && te.Duration == 20*time.Millisecond
				return c.NoContent(http.StatusGatewayTimeout)
			}),
		)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.True(t, <-seen)
	})

	t.Run("handler errors pass through", func(t *testing.T) {
		t.Parallel()
		app := newApp(func(c internal.Context) error {
			return internal.ErrNotFound("nothing here")
		}, []internal.Middleware{middlewares.Timeout(0)})

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("panic in handler gets 500", func(t *testing.T) {
		t.Parallel()

		seen := make(chan bool, 1)
		app := newApp(func(c internal.Context) error {
			var cat *category
			return c.String(http.StatusOK, cat.Name)
		}, []internal.Middleware{middlewares.Recover(), middlewares.Timeout(time.Second)},
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				_, ok := middlewares.AsPanicError(err)
				seen <- ok
				return c.NoContent(http.StatusInternalServerError)
			}),
		)

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/category", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, <-seen)
	})

	t.Run("panic without outer recover gets 500", func(t *testing.T) {
		t.Parallel()
		app := newApp(func(c internal.Context) error {
			panic("controller exploded")
		}, []internal.Middleware{middlewares.Timeout(time.Second)})

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/category", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "controller exploded")
	})

	t.Run("ErrAbortHandler is re-raised on the request goroutine", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		handler := middlewares.Timeout(time.Second)(func(c internal.Context) error {
			panic(http.ErrAbortHandler)
		})

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = handler(ctx) })
	})
}

type category struct{ Name string }
