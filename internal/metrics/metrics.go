// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// mounting promhttp.Handler() is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method, route pattern, and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SecretLoadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_load_total",
			Help: "Secret retrieval attempts at startup, by secret and result.",
		},
		[]string{"secret", "result"},
	)

	SecretsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "secrets_loaded",
			Help: "Number of secrets held in memory after the last load pass.",
		})

	HandlerPanicsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_handler_panics_total",
			Help: "Cumulative number of recovered handler panics.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		SecretLoadTotal,
		SecretsLoaded,
		HandlerPanicsTotal,
	)
}
