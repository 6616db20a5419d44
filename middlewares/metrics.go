package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/simplefw/internal"
)

// notFoundLabel replaces the controller label of 404 responses, so unknown
// paths do not create new series.
const notFoundLabel = "not_found"

// MetricsConfig configures the metrics middleware.
type MetricsConfig struct {
	Namespace string
	Buckets   []float64
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace prefixes every metric name.
func WithMetricsNamespace(ns string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Namespace = ns
	}
}

// WithMetricsBuckets sets the latency histogram buckets in seconds.
func WithMetricsBuckets(buckets ...float64) MetricsOption {
	return func(cfg *MetricsConfig) {
		if len(buckets) > 0 {
			cfg.Buckets = buckets
		}
	}
}

// Metrics records request counts, latencies and in-flight requests in reg,
// labelled by method, controller and status. Serve reg with
// simplefw.WithMetrics.
//
// Registering twice on the same registry reuses the existing collectors.
func Metrics(reg prometheus.Registerer, opts ...MetricsOption) internal.Middleware {
	cfg := MetricsConfig{Buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&cfg)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by method, controller and status.",
	}, []string{"method", "controller", "status"}))

	duration := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and controller.",
		Buckets:   cfg.Buckets,
	}, []string{"method", "controller"}))

	inFlight := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.Namespace,
		Name:      "http_requests_in_flight",
		Help:      "Number of HTTP requests being served.",
	}))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			controller := controllerLabel(c)
			if status == http.StatusNotFound {
				controller = notFoundLabel
			}
			method := c.Request().Method

			requests.WithLabelValues(method, controller, strconv.Itoa(status)).Inc()
			duration.WithLabelValues(method, controller).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func controllerLabel(c internal.Context) string {
	rt := c.Route()
	if rt.IsAPI {
		if rt.APIController == "" {
			return notFoundLabel
		}
		return rt.APIController
	}
	return rt.Controller
}

// responseStatus is the written status, or the status the error handler
// is about to write for err.
func responseStatus(c internal.Context, err error) int {
	if err == nil || c.Written() {
		return c.ResponseWriter().Status()
	}
	if he := internal.AsHTTPError(err); he != nil {
		return he.Code
	}
	return http.StatusInternalServerError
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
