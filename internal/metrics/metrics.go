// Package metrics declares the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HandoversCompleted counts handovers applied to the inventory.
	HandoversCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "handover_completed_total",
		Help: "Handovers applied to the inventory.",
	})

	// HandoversRejected counts handovers rejected before mutation, by reason code.
	HandoversRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "handover_rejected_total",
		Help: "Handovers rejected before any mutation, by reason.",
	}, []string{"reason"})

	// UnitsTransferred counts units moved between locations.
	UnitsTransferred = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "handover_units_transferred_total",
		Help: "Units moved between storage locations.",
	}, []string{"from", "to"})

	// AdvisoryRequests counts advisory text requests by kind and outcome.
	AdvisoryRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "handover_advisory_requests_total",
		Help: "Advisory text requests by kind and outcome (ok, fallback, cached).",
	}, []string{"kind", "outcome"})

	// AdvisoryDuration observes advisory generation latency.
	AdvisoryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "handover_advisory_duration_seconds",
		Help:    "Latency of advisory text generation.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
	}, []string{"kind"})

	// EventsPublished counts handover events sent to the broker, by outcome.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "handover_events_published_total",
		Help: "Handover events published to the message broker, by outcome.",
	}, []string{"outcome"})
)
