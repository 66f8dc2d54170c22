package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partytime_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// ActiveTokens tracks the number of live session tokens.
	ActiveTokens = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "partytime_active_tokens",
			Help: "Number of session tokens currently accepted by the server",
		},
	)

	// ImageUploads counts processed image uploads by kind (avatar|party_photo) and result.
	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partytime_image_uploads_total",
			Help: "Total number of processed image uploads",
		},
		[]string{"kind", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partytime_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
