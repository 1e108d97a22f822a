package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nova",
		Name:      "http_in_flight_requests",
		Help:      "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nova",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nova",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nova",
			Name:      "workflow_requests_submitted_total",
			Help:      "Requests submitted, by kind.",
		},
		[]string{"kind"},
	)

	RequestsDecided = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nova",
			Name:      "workflow_requests_decided_total",
			Help:      "Requests decided, by kind and decision.",
		},
		[]string{"kind", "decision"},
	)

	ClockEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nova",
			Name:      "attendance_clock_events_total",
			Help:      "Clock-in and clock-out events.",
		},
		[]string{"event"},
	)

	OutboxEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nova",
			Name:      "outbox_events_total",
			Help:      "Outbox events handled by the relay, by result.",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Init registers every collector in the default registry. Safe to call twice.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			RequestsSubmitted,
			RequestsDecided,
			ClockEvents,
			OutboxEvents,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records RPS, latency and in-flight count per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpInFlight.Inc()
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	}
}
