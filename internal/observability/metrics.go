package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	apiErrorsTotal       *prometheus.CounterVec
	relayConnectionsOpen prometheus.Gauge
	relayMessagesTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hommiefi_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hommiefi_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hommiefi_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		relayConnectionsOpen = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hommiefi_relay_connections_open",
			Help: "Number of websocket relay connections currently open.",
		})

		relayMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hommiefi_relay_messages_total",
			Help: "Total number of relay messages processed by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, relayConnectionsOpen, relayMessagesTotal)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// RelayConnections exposes the gauge of open relay connections.
func RelayConnections() prometheus.Gauge {
	RegisterMetrics()
	return relayConnectionsOpen
}

// RelayMessages exposes the counter of relay messages by outcome
// (broadcast, dropped_invalid, dropped_slow).
func RelayMessages() *prometheus.CounterVec {
	RegisterMetrics()
	return relayMessagesTotal
}
