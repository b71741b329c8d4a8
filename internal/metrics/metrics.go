package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hostel_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	PushDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hostel_push_delivered_total",
		Help: "Web push notifications delivered",
	})
	PushFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hostel_push_failed_total",
		Help: "Web push deliveries that errored",
	})
	PushDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hostel_push_dropped_total",
		Help: "Push jobs dropped because the queue was full",
	})
	PushExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hostel_push_expired_total",
		Help: "Push subscriptions pruned after a 410 response",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration,
		PushDelivered, PushFailed, PushDropped, PushExpired,
	)
}

// GinMiddleware records basic per-request metrics for Prometheus.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		labels := prometheus.Labels{"method": c.Request.Method, "path": path, "status": status}
		HTTPRequestsTotal.With(labels).Inc()
		HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
