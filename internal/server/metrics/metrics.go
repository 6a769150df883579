// Package metrics collects and exposes Prometheus metrics for the server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the server-side counters. Handlers and middleware
// talk to it through this one type so the metric names stay in one place.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration prometheus.Histogram

	importAdded    prometheus.Counter
	importRejected prometheus.Counter
	exports        prometheus.Counter
}

// NewCollector creates a Collector backed by its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lockbox_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lockbox_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		importAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockbox_import_rows_added_total",
			Help: "Spreadsheet import rows accepted.",
		}),
		importRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockbox_import_rows_rejected_total",
			Help: "Spreadsheet import rows rejected.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockbox_exports_total",
			Help: "Vault exports produced.",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.importAdded,
		c.importRejected,
		c.exports,
	)

	return c
}

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(method string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// ObserveImport records the outcome of one bulk import.
func (c *Collector) ObserveImport(added, rejected int) {
	c.importAdded.Add(float64(added))
	c.importRejected.Add(float64(rejected))
}

// ObserveExport records one produced export workbook.
func (c *Collector) ObserveExport() {
	c.exports.Inc()
}

// Handler returns the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
