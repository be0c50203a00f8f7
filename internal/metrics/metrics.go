package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Collectors exist from package init so code paths that record metrics work
// in tests without registration. Register exposes them on /metrics.
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yta_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "yta_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yta_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yta_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yta_pipeline_runs_total",
			Help: "Pipeline runs, by result (ok, primary_failed, aborted).",
		},
		[]string{"result"},
	)

	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "yta_pipeline_duration_seconds",
			Help:    "Duration of a full extract, transform and load pass.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	RecordsLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yta_records_loaded_total",
			Help: "Rows written to the primary store, by table.",
		},
		[]string{"table"},
	)

	BackupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "yta_backup_write_failures_total",
			Help: "Failed CSV backup writes.",
		},
	)
)

// Pipeline run results.
const (
	ResultOK            = "ok"
	ResultPrimaryFailed = "primary_failed"
	ResultAborted       = "aborted"
)

var registerOnce sync.Once

// Register adds every collector to the default registry. pool may be nil,
// in which case the connection pool gauges are skipped. Safe to call twice.
func Register(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration,
			RequestsInFlight,
			CacheHits,
			CacheMisses,
			PipelineRuns,
			PipelineDuration,
			RecordsLoaded,
			BackupFailures,
		)
		for _, r := range []string{ResultOK, ResultPrimaryFailed, ResultAborted} {
			PipelineRuns.WithLabelValues(r)
		}

		if pool == nil {
			return
		}
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "yta_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "yta_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	})
}

// Middleware records request duration and in-flight count.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber path and method are backed by the fasthttp buffer, copy them
		// before handlers run.
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := SanitizeEndpoint(path)

		RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		RequestDuration.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())
		RequestsInFlight.Dec()

		return err
	}
}

// SanitizeEndpoint collapses path parameters to keep label cardinality low.
func SanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/channels/") && strings.HasSuffix(path, "/videos"):
		return "/channels/:channel_id/videos"
	case strings.HasPrefix(path, "/channels/"):
		return "/channels/:channel_id"
	case strings.HasPrefix(path, "/backup/"):
		return "/backup/:kind"
	default:
		return path
	}
}

// Handler serves the Prometheus exposition through Fiber.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
