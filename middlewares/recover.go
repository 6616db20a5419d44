package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/simplefw/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Leave the stack out of logs and errors
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack disables stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover turns a panic in the handler chain into a 500 error, so the user
// gets the regular error page (or {"message"} on /api routes) instead of a
// dropped connection. http.ErrAbortHandler is re-raised.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if isAbort(r) {
					panic(r)
				}
				err = panicToError(c, r, cfg)
			}()

			return next(c)
		}
	}
}

func isAbort(r any) bool {
	e, ok := r.(error)
	return ok && errors.Is(e, http.ErrAbortHandler)
}

// panicToError logs a recovered value and wraps it in a 500 HTTPError.
func panicToError(c internal.Context, r any, cfg RecoverConfig) error {
	pe := &PanicError{Value: r, Route: c.Request().URL.Path}
	attrs := []any{slog.Any("panic", r), slog.String("path", pe.Route)}
	if !cfg.DisablePrintStack {
		buf := make([]byte, cfg.StackSize)
		pe.Stack = buf[:runtime.Stack(buf, false)]
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}
	c.LogError("panic recovered", attrs...)

	return internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithError(pe))
}
