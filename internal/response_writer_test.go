package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/internal"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, rw.Status())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, rw.Written())
}

func TestResponseWriter_Write(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)
	assert.False(t, rw.Written())

	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.EqualValues(t, 5, rw.Size())
	assert.Equal(t, http.StatusOK, rw.Status())
	assert.Equal(t, "hello", w.Body.String())
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	t.Parallel()

	t.Run("runs in order before headers", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := internal.NewResponseWriter(w)

		var order []int
		rw.OnBeforeWrite(func() {
			order = append(order, 1)
			rw.Header().Set("X-Hook", "yes")
		})
		rw.OnBeforeWrite(func() { order = append(order, 2) })

		rw.WriteHeader(http.StatusCreated)
		_, _ = rw.Write([]byte("x"))

		assert.Equal(t, []int{1, 2}, order)
		assert.Equal(t, "yes", w.Header().Get("X-Hook"))
	})

	t.Run("runs once on first write", func(t *testing.T) {
		t.Parallel()

		rw := internal.NewResponseWriter(httptest.NewRecorder())
		calls := 0
		rw.OnBeforeWrite(func() { calls++ })

		_, _ = rw.Write([]byte("a"))
		_, _ = rw.Write([]byte("b"))
		rw.WriteHeader(http.StatusOK)

		assert.Equal(t, 1, calls)
	})
}

func TestNewResponseWriter_ReusesWrapper(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	outer := internal.NewResponseWriter(w)
	inner := internal.NewResponseWriter(outer)

	assert.Same(t, outer, inner)
	assert.Same(t, w, inner.Unwrap())
}

func TestResponseWriter_Flush(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := internal.NewResponseWriter(w)
	rw.Flush()
	assert.True(t, w.Flushed)
}
