// Package metrics provides Prometheus metrics for the marketplace-api service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BidsCreated tracks the total number of bids submitted.
	BidsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_bids_created_total",
			Help: "Total number of bids submitted",
		},
	)

	// BidsWithdrawn tracks the total number of bids withdrawn by providers.
	BidsWithdrawn = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_bids_withdrawn_total",
			Help: "Total number of pending bids withdrawn",
		},
	)

	// BidStatusTransitions tracks bid status changes.
	BidStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_bid_status_transitions_total",
			Help: "Total number of bid status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	// MessagesAppended tracks messages persisted to history.
	MessagesAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_messages_appended_total",
			Help: "Total number of chat messages appended to history",
		},
	)

	// ActiveSubscriptions tracks the number of open live channel subscriptions.
	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marketplace_channel_subscriptions",
			Help: "Number of currently open live channel subscriptions",
		},
	)

	// LiveDeliveries tracks live push outcomes on the channel hub.
	LiveDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_live_deliveries_total",
			Help: "Total number of live message delivery attempts by outcome",
		},
		[]string{"outcome"},
	)

	// HTTPRequests tracks served HTTP requests by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RequirementLookups tracks calls to the external requirement service.
	RequirementLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_requirement_lookups_total",
			Help: "Total number of requirement service lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// Live delivery outcomes.
const (
	OutcomeDelivered  = "delivered"
	OutcomeDropped    = "dropped"
	OutcomeNoReceiver = "no_receiver"
)
