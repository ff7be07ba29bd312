// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simplesocial_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrors counts failed repository calls by operation and table.
	DatabaseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplesocial_database_errors_total",
		Help: "Total number of failed repository calls",
	}, []string{"operation", "table"})

	// EventsPublished counts domain events handed to the notifier, by type and result.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplesocial_events_published_total",
		Help: "Total number of domain events published",
	}, []string{"event_type", "result"})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplesocial_redis_errors_total",
		Help: "Total number of failed Redis commands",
	}, []string{"command"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
