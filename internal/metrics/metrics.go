// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Interaction metrics
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recap_interactions_total",
			Help: "Total Discord interactions handled",
		},
		[]string{"type", "name"},
	)

	InteractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recap_interaction_duration_seconds",
			Help:    "Time spent handling a Discord interaction",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"name"},
	)

	// Pipeline metrics
	SummaryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recap_summary_requests_total",
			Help: "Summary requests by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: "window" or "range"
	)

	MessagesRetrieved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recap_messages_retrieved",
			Help:    "Messages retrieved per summary request",
			Buckets: []float64{0, 1, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	ChannelRetrievalFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recap_channel_retrieval_failures_total",
			Help: "Channels skipped because their history could not be read",
		},
	)

	ChunksDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recap_chunks_delivered_total",
			Help: "Summary chunks delivered to requesters",
		},
	)

	// LLM metrics
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recap_llm_request_duration_seconds",
			Help:    "Completion request latency",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider", "status"},
	)

	LLMUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recap_llm_up",
			Help: "1 if the last connectivity probe of the completion backend succeeded",
		},
	)
)
