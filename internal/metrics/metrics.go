// Package metrics holds the package-level prometheus collectors. Exposed
// on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "voterapi_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "status"})

	storeQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voterapi_store_query_seconds",
		Help:    "Duration of voter store round-trips.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store", "op"})

	OutboxProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "voterapi_outbox_processed_total",
		Help: "Outbox events applied to voter documents.",
	})

	OutboxFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "voterapi_outbox_failures_total",
		Help: "Outbox events that exhausted their retry budget.",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, storeQueryDuration, OutboxProcessed, OutboxFailures)
}

// ObserveStoreQuery starts a timer for one store round-trip; call the
// returned func when the query finishes.
func ObserveStoreQuery(store, op string) func() {
	start := time.Now()
	return func() {
		storeQueryDuration.WithLabelValues(store, op).Observe(time.Since(start).Seconds())
	}
}
