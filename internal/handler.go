package internal

// Handler declares routes on a router.
//
// Example:
//
//	type StatusHandler struct{}
//
//	func (h *StatusHandler) Routes(r simplefw.Router) {
//	    r.GET("/about", h.about)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers and controller actions.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func ReadOnly(next simplefw.HandlerFunc) simplefw.HandlerFunc {
//	    return func(c simplefw.Context) error {
//	        if c.Request().Method != http.MethodGet {
//	            return simplefw.ErrForbidden("read only")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
