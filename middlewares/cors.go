package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/simplefw/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists allowed origins; "*" allows any.
	AllowOrigins []string

	// AllowOriginFunc overrides AllowOrigins when set.
	AllowOriginFunc func(origin string) bool

	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string

	// AllowCredentials echoes the origin instead of "*".
	AllowCredentials bool

	MaxAge time.Duration

	// AllRoutes applies CORS to web pages too, not only /api routes.
	AllRoutes bool
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowOriginFunc sets a dynamic origin validator.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the headers exposed to the client.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials enables credentials support.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = d
	}
}

// WithCORSAllRoutes applies CORS to every route instead of /api only.
func WithCORSAllRoutes() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllRoutes = true
	}
}

// corsPolicy holds the precomputed header values.
type corsPolicy struct {
	cfg      CORSConfig
	wildcard bool
	methods  string
	headers  string
	expose   string
	maxAge   string
}

func (p *corsPolicy) allows(origin string) bool {
	if p.cfg.AllowOriginFunc != nil {
		return p.cfg.AllowOriginFunc(origin)
	}
	return p.wildcard || slices.Contains(p.cfg.AllowOrigins, origin)
}

// CORS answers preflight requests and adds CORS headers for allowed
// origins. By default only /api routes are covered; preflights there never
// reach the API controllers.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		MaxAge:       DefaultCORSMaxAge,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &corsPolicy{
		cfg:      cfg,
		wildcard: slices.Contains(cfg.AllowOrigins, "*"),
		methods:  strings.Join(cfg.AllowMethods, ", "),
		headers:  strings.Join(cfg.AllowHeaders, ", "),
		expose:   strings.Join(cfg.ExposeHeaders, ", "),
		maxAge:   strconv.Itoa(int(cfg.MaxAge.Seconds())),
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || (!cfg.AllRoutes && !c.IsAPI()) || !p.allows(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if cfg.AllowCredentials || !p.wildcard {
				h.Set("Access-Control-Allow-Origin", origin)
			} else {
				h.Set("Access-Control-Allow-Origin", "*")
			}
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if p.expose != "" {
				h.Set("Access-Control-Expose-Headers", p.expose)
			}

			if c.Request().Method != http.MethodOptions || c.Header("Access-Control-Request-Method") == "" {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", p.methods)
			h.Set("Access-Control-Allow-Headers", p.headers)
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", p.maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
