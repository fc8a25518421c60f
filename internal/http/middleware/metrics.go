// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic. Labels are
// kept to method, registered route path, and status so cardinality stays
// bounded: the path label uses c.FullPath() and falls back to the raw URL
// path only when no route matched.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of in-flight requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// boardMessages gauges the number of messages currently on the board,
	// refreshed by the handlers after each list/mutation.
	boardMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_messages",
			Help: "Number of messages currently stored on the board.",
		},
	)

	// sweepDeletes counts messages removed by expiry, labeled by trigger
	// ("request" for the older-than endpoint, "sweep" for the background job).
	sweepDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_expired_messages_total",
			Help: "Total messages removed because they were older than the configured window.",
		},
		[]string{"trigger"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, boardMessages, sweepDeletes)
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		httpReqs.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// SetBoardSize records the current message count gauge.
func SetBoardSize(n int) { boardMessages.Set(float64(n)) }

// AddExpired records messages removed by an expiry pass.
func AddExpired(trigger string, n int) {
	if n > 0 {
		sweepDeletes.WithLabelValues(trigger).Add(float64(n))
	}
}
