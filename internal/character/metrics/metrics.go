// Package metrics provides Prometheus metrics for upstream character queries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream request outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeTimeout        = "timeout"
	OutcomeDecodeError    = "decode_error"
)

// Metrics contains the character gateway metrics.
type Metrics struct {
	UpstreamRequestsTotal   *prometheus.CounterVec   // Upstream calls by endpoint and outcome
	UpstreamDurationSeconds *prometheus.HistogramVec // Upstream call latency by endpoint
	CharactersDecodedTotal  prometheus.Counter       // Character records decoded from upstream
	StatisticsComputedTotal prometheus.Counter       // Species statistics answered
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rickmorty_upstream_requests_total",
			Help: "Total number of upstream character API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),

		UpstreamDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rickmorty_upstream_request_duration_seconds",
			Help:    "Duration of upstream character API requests by endpoint",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),

		CharactersDecodedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rickmorty_characters_decoded_total",
			Help: "Total number of character records decoded from upstream responses",
		}),

		StatisticsComputedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rickmorty_species_statistics_total",
			Help: "Total number of species statistics computed",
		}),
	}
}

// ObserveUpstreamRequest records one upstream call.
func (m *Metrics) ObserveUpstreamRequest(endpoint, outcome string, durationSeconds float64) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.UpstreamDurationSeconds.WithLabelValues(endpoint).Observe(durationSeconds)
}

// AddCharactersDecoded counts decoded character records.
func (m *Metrics) AddCharactersDecoded(n int) {
	m.CharactersDecodedTotal.Add(float64(n))
}

// IncrementStatisticsComputed records a species statistic answer.
func (m *Metrics) IncrementStatisticsComputed() {
	m.StatisticsComputedTotal.Inc()
}
