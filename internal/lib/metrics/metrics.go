// Package metrics объявляет метрики Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы переключения отметки.
const (
	ToggleApplied  = "applied"
	ToggleBlocked  = "blocked"
	ToggleRejected = "rejected"
	ToggleFailed   = "error"
)

var (
	// SelectionToggles считает попытки переключения отметки по исходу.
	SelectionToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_selection_toggles_total",
			Help: "Total number of meal selection toggles by outcome",
		},
		[]string{"outcome"},
	)

	// AuthAttempts считает попытки входа (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_auth_attempts_total",
			Help: "Total number of sign-in attempts",
		},
		[]string{"result"},
	)

	// DigestsPublished считает отправку сводок на кухню (success|failure|skipped).
	DigestsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_kitchen_digests_total",
			Help: "Total number of kitchen digest runs by result",
		},
		[]string{"result"},
	)

	// HTTPRequests считает HTTP-запросы.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// APILatency длительность обработки HTTP-запросов.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canteen_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
