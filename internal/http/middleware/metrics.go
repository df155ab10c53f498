// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the Prometheus instrumentation for feed traffic. Labels
// are kept to method, registered route and status so cardinality stays
// bounded even though the legacy endpoints take arbitrary host and keyword
// parameters in the query string.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Latency omits the status label to halve histogram cardinality.
	reqLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	reqInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// Response bodies range from tiny JSON envelopes and empty HTML comments
	// up to fully assembled pages with inlined templates, so the buckets
	// stretch from a few hundred bytes into the megabytes.
	respBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
				1 << 20, 2 << 20, 5 << 20,
			},
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(reqTotal, reqLatency, reqInFlight, respBytes)
}

// Metrics instruments every request with the package collectors: a request
// counter by method, route and status, a latency histogram, an in-flight
// gauge and a response size histogram.
//
// The path label is the registered route pattern, falling back to the raw
// URL path only when no route matched. Requests that never report a body
// size (c.Writer.Size() == -1) skip the size histogram.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInFlight.Inc()
		defer reqInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		reqTotal.WithLabelValues(method, path, status).Inc()
		reqLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			respBytes.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
