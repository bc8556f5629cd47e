// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of analyses by the tier that served them",
		},
		[]string{"tier"},
	)

	SourceAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_source_attempts_total",
			Help: "Provider calls by source, operation and result",
		},
		[]string{"source", "operation", "result"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_cache_lookups_total",
			Help: "Analysis cache lookups by result",
		},
		[]string{"result"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Duration of an analysis request in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"tier"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

func RecordSourceAttempt(source, operation string, ok bool) {
	result := "absent"
	if ok {
		result = "present"
	}
	SourceAttempts.WithLabelValues(source, operation, result).Inc()
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(result).Inc()
}

func RecordAnalysis(tier string, elapsed time.Duration) {
	AnalysisRequests.WithLabelValues(tier).Inc()
	AnalysisDuration.WithLabelValues(tier).Observe(elapsed.Seconds())
}
