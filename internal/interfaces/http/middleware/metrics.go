package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrorCodeKey is the gin context key handlers store the API error code under
const ErrorCodeKey = "error_code"

// Prometheus metric names
const (
	MetricRequestsTotal          = "supp_http_requests_total"
	MetricRequestDurationSeconds = "supp_http_request_duration_seconds"
	MetricRequestsInFlight       = "supp_http_requests_in_flight"
	MetricResponseSizeBytes      = "supp_http_response_size_bytes"
	MetricErrorResponsesTotal    = "supp_http_error_responses_total"
)

// HTTPMetricsConfig holds the Prometheus HTTP metrics configuration
type HTTPMetricsConfig struct {
	// Registry receives the collectors. A fresh registry is created when nil.
	Registry *prometheus.Registry
	// HistogramBuckets for request duration. Default: prometheus.DefBuckets
	HistogramBuckets []float64
	// RuntimeCollectors adds the Go and process collectors
	RuntimeCollectors bool
}

// HTTPMetrics collects per-route request metrics and serves them for scraping
type HTTPMetrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	responseSize     *prometheus.HistogramVec
	errorResponses   *prometheus.CounterVec
}

// NewHTTPMetrics creates and registers the HTTP collectors
func NewHTTPMetrics(cfg HTTPMetricsConfig) (*HTTPMetrics, error) {
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if len(cfg.HistogramBuckets) == 0 {
		cfg.HistogramBuckets = prometheus.DefBuckets
	}

	m := &HTTPMetrics{
		registry: cfg.Registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "HTTP request latency in seconds",
			Buckets: cfg.HistogramBuckets,
		}, []string{"method", "route"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRequestsInFlight,
			Help: "HTTP requests currently being served",
		}),
		responseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricResponseSizeBytes,
			Help:    "HTTP response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		}, []string{"method", "route"}),
		errorResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricErrorResponsesTotal,
			Help: "Error responses by route and API error code",
		}, []string{"route", "code"}),
	}

	toRegister := []prometheus.Collector{
		m.requestsTotal, m.requestDuration, m.requestsInFlight, m.responseSize, m.errorResponses,
	}
	if cfg.RuntimeCollectors {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware records every request. Routes are reported by pattern.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := c.Writer.Status()

		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.WithLabelValues(method, route).Observe(float64(size))
		}
		if status >= http.StatusBadRequest {
			code := c.GetString(ErrorCodeKey)
			if code == "" {
				code = strconv.Itoa(status)
			}
			m.errorResponses.WithLabelValues(route, code).Inc()
		}
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the collectors live in
func (m *HTTPMetrics) Registry() *prometheus.Registry {
	return m.registry
}
