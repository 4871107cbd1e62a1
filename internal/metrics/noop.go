package metrics

import (
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
)

// NoopMetrics is a no-operation implementation of core.Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements core.Recorder at compile time
var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthorizationRedirect(provider string, success bool)         {}
func (n *NoopMetrics) RecordCallback(provider, outcome string, duration time.Duration) {}

func (n *NoopMetrics) RecordStageFailure(
	provider string,
	stage core.State,
	kind core.ErrorKind,
) {
}

func (n *NoopMetrics) RecordChannelsPersisted(provider string, count int) {}

func (n *NoopMetrics) RecordProviderCall(
	provider, operation string,
	success bool,
	duration time.Duration,
) {
}

func (n *NoopMetrics) RecordDiagnosticsDropped()                   {}
func (n *NoopMetrics) SetLinkedChannels(source string, count int) {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)   {}
