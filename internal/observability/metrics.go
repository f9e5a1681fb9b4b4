package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebhookEvents counts identity-provider webhook events by type and result.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_webhook_events_total",
		Help: "Identity provider webhook events by event type and result",
	}, []string{"event_type", "result"})

	// MutationFailures counts failed domain mutation operations by name.
	MutationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_mutation_failures_total",
		Help: "Failed domain mutation operations by operation name",
	}, []string{"operation"})

	// NotificationsPublished counts domain events published to Redis pub/sub.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notifications_published_total",
		Help: "Domain events published to pub/sub by event type",
	}, []string{"event_type"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
