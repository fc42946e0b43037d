package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts handled HTTP requests by route, method and status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "laptrack_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"path", "method", "status"},
)

// HTTPRequestDuration records request latency by route and method
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "laptrack_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// Domain mutation and auth metrics
var (
	InventoryMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laptrack_inventory_mutations_total",
			Help: "Number of successful inventory mutations by entity and action",
		},
		[]string{"entity", "action"},
	)

	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laptrack_auth_events_total",
			Help: "Authentication outcomes by event and result",
		},
		[]string{"event", "result"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "laptrack_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laptrack_events_published_total",
			Help: "Domain events handed to the publisher by type and result",
		},
		[]string{"type", "result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(InventoryMutations, AuthEvents, RateLimited, EventsPublished)
}
