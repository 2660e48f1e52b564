package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treelocator",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "treelocator",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "treelocator",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Upstream metrics (nominatim, overpass)
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treelocator",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total requests issued to upstream OSM services",
	}, []string{"service", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "treelocator",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Upstream request latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	}, []string{"service"})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treelocator",
		Subsystem: "upstream",
		Name:      "errors_total",
		Help:      "Total transport-level upstream failures",
	}, []string{"service"})

	// Search metrics
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treelocator",
		Subsystem: "search",
		Name:      "total",
		Help:      "Total tree searches served",
	}, []string{"query_mode", "mode"})

	SampleSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "treelocator",
		Subsystem: "search",
		Name:      "sample_size",
		Help:      "Number of tree points returned per sample",
		Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
	})
)

// ObserveUpstream records one upstream call.
func ObserveUpstream(service string, status int, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(status)).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
