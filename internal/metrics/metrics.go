package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the Viral Daily backend.
var Metrics = struct {
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	UpstreamFailures    *prometheus.CounterVec
	FallbackRecords     *prometheus.CounterVec
	AggregationDuration prometheus.Histogram
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
}{}

// Init registers all Prometheus metrics. Call once at startup; pool may be
// nil when the snapshot store is not configured.
func Init(pool *pgxpool.Pool) {
	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "viraldaily_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "viraldaily_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.UpstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viraldaily_upstream_failures_total",
			Help: "Source adapter failures recovered by fallback, by platform and kind.",
		},
		[]string{"platform", "kind"},
	)

	Metrics.FallbackRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viraldaily_fallback_records_total",
			Help: "Synthetic records substituted for missing upstream results, by platform.",
		},
		[]string{"platform"},
	)

	Metrics.AggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "viraldaily_aggregation_duration_seconds",
			Help:    "Duration of full multi-platform aggregation cycles.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viraldaily_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viraldaily_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "viraldaily_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "viraldaily_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.UpstreamFailures,
		Metrics.FallbackRecords,
		Metrics.AggregationDuration,
		Metrics.CacheHits,
		Metrics.CacheMisses,
	)
}

// Middleware records request duration and in-flight count for Prometheus.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))

		// Nil-checked like every other collector: the middleware must be
		// inert when Init has not run.
		if Metrics.RequestsInFlight != nil {
			Metrics.RequestsInFlight.Inc()
		}
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		if Metrics.RequestDuration != nil {
			Metrics.RequestDuration.WithLabelValues(path, method, status).Observe(duration)
		}
		if Metrics.RequestsInFlight != nil {
			Metrics.RequestsInFlight.Dec()
		}

		return err
	}
}

// Handler serves the Prometheus /metrics endpoint via Fiber.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}
