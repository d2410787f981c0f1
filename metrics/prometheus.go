package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	batchesDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_batches_dispatched_total",
			Help: "Total number of update batches pushed to marketplace APIs.",
		},
		[]string{"target", "kind"},
	)
	updatesDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_updates_dispatched_total",
			Help: "Total number of individual update records pushed.",
		},
		[]string{"target", "kind"},
	)
	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Histogram of full synchronization run durations per target.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"target", "status"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests to the status server.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of status server request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(batchesDispatched)
	prometheus.MustRegister(updatesDispatched)
	prometheus.MustRegister(runDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

// RecordBatch учитывает один отправленный батч указанного вида
// (kind: "stocks" | "prices").
func RecordBatch(target, kind string, size int) {
	batchesDispatched.WithLabelValues(target, kind).Inc()
	updatesDispatched.WithLabelValues(target, kind).Add(float64(size))
}

// RecordRun записывает длительность одного прогона синхронизации.
func RecordRun(target string, failed bool, duration time.Duration) {
	status := "completed"
	if failed {
		status = "failed"
	}
	runDuration.WithLabelValues(target, status).Observe(duration.Seconds())
}

// RecordRequest записывает метрики для HTTP-запроса статусного сервера.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler возвращает HTTP-обработчик для экспорта метрик Prometheus.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
