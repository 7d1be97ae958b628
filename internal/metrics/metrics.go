// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Fetches counts health data fetches by period and outcome.
	Fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthhub",
		Name:      "fetches_total",
		Help:      "Health data set fetches.",
	}, []string{"period", "outcome"})

	// Appends counts appended entries by series.
	Appends = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthhub",
		Name:      "entries_appended_total",
		Help:      "Entries appended to a health series.",
	}, []string{"series"})

	// Tasks counts finished background tasks by kind and status.
	Tasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthhub",
		Name:      "tasks_finished_total",
		Help:      "Background tasks that reached a terminal status.",
	}, []string{"kind", "status"})

	// TaskDuration observes how long tasks ran.
	TaskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "healthhub",
		Name:      "task_duration_seconds",
		Help:      "Run time of background tasks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	// Requests counts HTTP requests by method and status code.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "healthhub",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "code"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
