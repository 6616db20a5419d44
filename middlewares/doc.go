// Package middlewares provides HTTP middleware for simplefw applications.
//
// # Request ID
//
// RequestID tags each request with an ID taken from X-Request-ID or
// X-Correlation-ID, or a new UUID. Pair it with RequestIDExtractor so every
// log record carries the ID:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	app := simplefw.New(
//	    simplefw.WithCustomLogger(log),
//	    simplefw.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into a 500 error rendered by the error handler, so
// web pages get the error view and /api routes get {"message": "..."}.
// The PanicError stays reachable through errors.As:
//
//	simplefw.WithErrorHandler(func(c simplefw.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value)
//	    }
//	    return c.String(500, "Internal Server Error")
//	})
//
// # Timeout
//
// Timeout puts a deadline on the request context. Repository calls made
// with the Context are cancelled when it passes, and the client gets a 503.
//
// # CORS
//
// CORS answers preflight requests and sets the Access-Control headers. Only
// /api routes are covered unless WithCORSAllRoutes is given:
//
//	middlewares.CORS(
//	    middlewares.WithAllowOrigins("https://app.example.com"),
//	    middlewares.WithAllowCredentials(),
//	)
//
// # Metrics and Access Log
//
// Metrics counts requests per method, controller and status, and records
// their latency. AccessLog writes one record per request.
//
//	reg := prometheus.NewRegistry()
//	simplefw.New(
//	    simplefw.WithMiddleware(
//	        middlewares.Metrics(reg),
//	        middlewares.AccessLog(middlewares.WithAccessLogSkipPaths("/health/live")),
//	    ),
//	    simplefw.WithMetrics("/metrics", reg),
//	)
//
// # Recommended Order
//
//	simplefw.WithMiddleware(
//	    middlewares.RequestID(),          // ID for every later log line
//	    middlewares.AccessLog(),
//	    middlewares.Metrics(reg),
//	    middlewares.CORS(),               // preflights stop here
//	    middlewares.Recover(),
//	    middlewares.Timeout(10*time.Second),
//	)
package middlewares
