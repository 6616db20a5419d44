package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/simplefw/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout bounds each request with a deadline. The handler sees it through
// the request context, so repository calls are cancelled with it. When the
// deadline passes first, a 503 wrapping a TimeoutError is returned.
//
// The handler goroutine keeps running after the deadline until it notices
// the cancelled context. A panic on that goroutine is recovered there and
// returned as a 500 wrapping a PanicError, since an outer Recover cannot
// reach it. http.ErrAbortHandler is re-raised on the request goroutine.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			done := make(chan error, 1)
			aborted := make(chan any, 1)
			go func() {
				defer func() {
					r := recover()
					if r == nil {
						return
					}
					if isAbort(r) {
						aborted <- r
						return
					}
					done <- panicToError(c, r, RecoverConfig{StackSize: DefaultStackSize})
				}()
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case r := <-aborted:
				panic(r)
			case <-ctx.Done():
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return ctx.Err()
				}
				c.LogWarn("request timeout", "timeout", timeout.String())
				return internal.ErrServiceUnavailable("Request timeout",
					internal.WithError(&TimeoutError{Duration: timeout}))
			}
		}
	}
}
