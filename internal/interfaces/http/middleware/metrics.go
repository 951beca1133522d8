package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics holds the Prometheus instruments for the HTTP surface.
type HTTPMetrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pdfExportTotal  *prometheus.CounterVec
}

// NewHTTPMetrics creates and registers the HTTP metrics on the given
// registerer. Pass prometheus.DefaultRegisterer in production; tests use
// a private registry to avoid duplicate registration.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bewertung_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bewertung_http_request_duration_seconds",
			Help:    "HTTP request latency distribution in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "path"}),
		pdfExportTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bewertung_pdf_exports_total",
			Help: "Total number of PDF export attempts by outcome",
		}, []string{"outcome"}),
	}
}

// Middleware records request count and latency per route.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Use the route template so IDs do not explode cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.requestTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveExport counts one PDF export attempt.
func (m *HTTPMetrics) ObserveExport(outcome string) {
	m.pdfExportTotal.WithLabelValues(outcome).Inc()
}
