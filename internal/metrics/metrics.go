package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tictactoe_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// RoomActionsTotal - room requests by action and how they ended.
	RoomActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_room_actions_total",
			Help: "Total room actions",
		},
		[]string{"action", "result"},
	)

	AuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tictactoe_auth_failures_total",
			Help: "Requests rejected as unauthorized",
		},
	)
)
