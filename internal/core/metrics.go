package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Onboarding flow
	RecordAuthorizationRedirect(provider string, success bool)
	RecordCallback(provider, outcome string, duration time.Duration)
	RecordStageFailure(provider string, stage State, kind ErrorKind)
	RecordChannelsPersisted(provider string, count int)

	// Provider API calls
	RecordProviderCall(provider, operation string, success bool, duration time.Duration)

	// Diagnostics
	RecordDiagnosticsDropped()

	// Registry gauges
	SetLinkedChannels(source string, count int)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}
