package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recordsync_requests_total",
		Help: "The total number of requests sent, by method and outcome",
	}, []string{"method", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recordsync_request_duration_seconds",
		Help:    "Request round-trip duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	transformsPushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recordsync_transforms_pushed_total",
		Help: "The total number of transforms pushed",
	})

	transformsMerged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recordsync_transforms_merged_total",
		Help: "The total number of follow-up transforms produced by response merge",
	})
)

// The request outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeTimeout = "timeout"
	OutcomeNetwork = "network"
	OutcomeClient  = "client"
	OutcomeServer  = "server"
)

// ObserveRequest records one completed (or failed) request.
func ObserveRequest(method, outcome string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, outcome).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// TransformPushed records one pushed transform.
func TransformPushed() {
	transformsPushed.Inc()
}

// TransformsMerged records follow-up transforms produced by a merge.
func TransformsMerged(n int) {
	transformsMerged.Add(float64(n))
}
