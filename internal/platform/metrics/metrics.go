// Package metrics defines the service's Prometheus collectors. Everything
// registers on the default registry and is served from /internal/metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_pipeline_runs_total",
			Help: "Pipeline runs by outcome",
		},
		[]string{"status"}, // "success", "error", "rejected"
	)

	PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "usage_pipeline_run_duration_seconds",
			Help:    "Wall time of a full pipeline run",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usage_pipeline_stage_duration_seconds",
			Help:    "Wall time of a single pipeline stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	PipelineRejectedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_pipeline_rejected_records_total",
			Help: "Raw records dropped by the cleaner or the joiner",
		},
		[]string{"table", "reason"},
	)

	PipelineDerivedRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "usage_pipeline_derived_rows",
			Help: "Row count of each derived table from the last successful run",
		},
		[]string{"table"},
	)

	PipelineLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "usage_pipeline_last_success_timestamp",
			Help: "Unix timestamp of the last successful run",
		},
	)

	IngestRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_ingest_records_total",
			Help: "Raw records received by the ingest API",
		},
		[]string{"table", "result"}, // result: "created", "duplicate"
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usage_api_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usage_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// RecordRejections adds the per-reason drop counts of one table.
func RecordRejections(table string, byReason map[string]int) {
	for reason, n := range byReason {
		if n > 0 {
			PipelineRejectedRecords.WithLabelValues(table, reason).Add(float64(n))
		}
	}
}

func RecordStage(stage string, d time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun closes out a run. rowCounts is only applied on success.
func RecordRun(status string, d time.Duration, rowCounts map[string]int) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineRunDuration.Observe(d.Seconds())
	if status != "success" {
		return
	}
	for table, n := range rowCounts {
		PipelineDerivedRows.WithLabelValues(table).Set(float64(n))
	}
	PipelineLastSuccess.SetToCurrentTime()
}

func RecordIngest(table string, created, duplicates int) {
	IngestRecordsTotal.WithLabelValues(table, "created").Add(float64(created))
	IngestRecordsTotal.WithLabelValues(table, "duplicate").Add(float64(duplicates))
}

// FiberMiddleware records request count and latency per matched route.
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		APIRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		APIRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
