package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/internal"
	"github.com/dmitrymomot/simplefw/middlewares"
)

// counterValue returns the http_requests_total sample with the given labels.
func counterValue(t *testing.T, reg *prometheus.Registry, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	app := newApp(func(c internal.Context) error {
		switch c.Route().Entity {
		case "Category":
			return c.String(http.StatusOK, "ok")
		case "Broken":
			return internal.ErrInternal("Internal Server Error")
		default:
			return internal.ErrNotFound("Page not found")
		}
	}, []internal.Middleware{middlewares.Metrics(reg)},
		internal.WithMetrics("/metrics", reg),
	)

	serve(app, httptest.NewRequest(http.MethodGet, "/category", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/category/edit/1", nil))
	serve(app, httptest.NewRequest(http.MethodPost, "/api/category", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/nothing-here", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, 2.0, counterValue(t, reg, map[string]string{
		"method": "GET", "controller": "CategoryController", "status": "200",
	}))
	assert.Equal(t, 1.0, counterValue(t, reg, map[string]string{
		"method": "POST", "controller": "CategoriesController", "status": "200",
	}))
	assert.Equal(t, 1.0, counterValue(t, reg, map[string]string{
		"controller": "not_found", "status": "404",
	}))
	assert.Equal(t, 1.0, counterValue(t, reg, map[string]string{
		"controller": "BrokenController", "status": "500",
	}))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
	assert.Contains(t, rec.Body.String(), "http_requests_in_flight")
}

func TestMetricsRouteMiddlewareSeesErrors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/api/category", func(c internal.Context) error {
			return internal.ErrConflict("already exists")
		}, middlewares.Metrics(reg))
	})))

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/api/category", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1.0, counterValue(t, reg, map[string]string{
		"controller": "CategoriesController", "status": "409",
	}))
}

func TestMetricsReusesCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() {
		middlewares.Metrics(reg, middlewares.WithMetricsBuckets(0.1, 1))
		middlewares.Metrics(reg)
	})
}

func TestMetricsNamespace(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	app := newApp(func(c internal.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, []internal.Middleware{middlewares.Metrics(reg, middlewares.WithMetricsNamespace("simplefw"))})

	serve(app, httptest.NewRequest(http.MethodGet, "/", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "simplefw_http_requests_total")
}
