package metrics

import (
	"sync"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements core.Recorder at compile time
var _ core.Recorder = (*Metrics)(nil)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Onboarding flow
	AuthorizationRedirectsTotal *prometheus.CounterVec
	CallbacksTotal              *prometheus.CounterVec
	CallbackDuration            *prometheus.HistogramVec
	StageFailuresTotal          *prometheus.CounterVec
	ChannelsPersistedTotal      *prometheus.CounterVec

	// Provider API calls
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration *prometheus.HistogramVec

	// Diagnostics
	DiagnosticsDroppedTotal prometheus.Counter

	// Registry
	LinkedChannels *prometheus.GaugeVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	return &Metrics{
		AuthorizationRedirectsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connector_authorization_redirects_total",
				Help: "Total number of redirects to provider consent screens",
			},
			[]string{"provider", "result"},
		),
		CallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connector_callbacks_total",
				Help: "Total number of provider callbacks by outcome",
			},
			[]string{"provider", "outcome"}, // success or error taxonomy
		),
		CallbackDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "connector_callback_duration_seconds",
				Help:    "Time spent handling one provider callback",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider"},
		),
		StageFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connector_stage_failures_total",
				Help: "Total number of onboarding failures by pipeline state",
			},
			[]string{"provider", "stage", "kind"},
		),
		ChannelsPersistedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connector_channels_persisted_total",
				Help: "Total number of channels inserted or updated by onboarding",
			},
			[]string{"provider"},
		),

		ProviderCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "connector_provider_calls_total",
				Help: "Total number of provider API calls",
			},
			[]string{"provider", "operation", "result"},
		),
		ProviderCallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "connector_provider_call_duration_seconds",
				Help:    "Provider API call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),

		DiagnosticsDroppedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "connector_diagnostics_dropped_total",
				Help: "Informational diagnostics records dropped because the buffer was full",
			},
		),

		LinkedChannels: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "connector_linked_channels",
				Help: "Current number of channels in the registry",
			},
			[]string{"source"},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors",
			},
			[]string{"operation"},
		),
	}
}

func result(success bool) string {
	if success {
		return resultSuccess
	}
	return resultError
}

// RecordAuthorizationRedirect records a consent redirect attempt
func (m *Metrics) RecordAuthorizationRedirect(provider string, success bool) {
	m.AuthorizationRedirectsTotal.WithLabelValues(provider, result(success)).Inc()
}

// RecordCallback records the outcome of one callback run
func (m *Metrics) RecordCallback(provider, outcome string, duration time.Duration) {
	m.CallbacksTotal.WithLabelValues(provider, outcome).Inc()
	m.CallbackDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordStageFailure records the state a failed run stopped at
func (m *Metrics) RecordStageFailure(provider string, stage core.State, kind core.ErrorKind) {
	m.StageFailuresTotal.WithLabelValues(provider, string(stage), string(kind)).Inc()
}

// RecordChannelsPersisted records channels written by a successful run
func (m *Metrics) RecordChannelsPersisted(provider string, count int) {
	m.ChannelsPersistedTotal.WithLabelValues(provider).Add(float64(count))
}

// RecordProviderCall records one outbound provider API call
func (m *Metrics) RecordProviderCall(
	provider, operation string,
	success bool,
	duration time.Duration,
) {
	m.ProviderCallsTotal.WithLabelValues(provider, operation, result(success)).Inc()
	m.ProviderCallDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// SetLinkedChannels sets the registry size for one source
func (m *Metrics) SetLinkedChannels(source string, count int) {
	m.LinkedChannels.WithLabelValues(source).Set(float64(count))
}

// RecordDiagnosticsDropped records an info record lost to a full buffer
func (m *Metrics) RecordDiagnosticsDropped() {
	m.DiagnosticsDroppedTotal.Inc()
}

// RecordDatabaseQueryError records a database query error
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
