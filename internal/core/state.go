package core

// State is a step of the callback state machine
type State string

const (
	StateReceived          State = "RECEIVED"
	StateCodeValidated     State = "CODE_VALIDATED"
	StateTokenAcquired     State = "TOKEN_ACQUIRED"
	StateChannelDiscovered State = "CHANNEL_DISCOVERED"
	StateWebhookSubscribed State = "WEBHOOK_SUBSCRIBED"
	StatePersisted         State = "PERSISTED"
	StateSucceeded         State = "SUCCEEDED"
	StateFailed            State = "FAILED"
)

var nextState = map[State]State{
	StateReceived:          StateCodeValidated,
	StateCodeValidated:     StateTokenAcquired,
	StateTokenAcquired:     StateChannelDiscovered,
	StateChannelDiscovered: StateWebhookSubscribed,
	StateWebhookSubscribed: StatePersisted,
	StatePersisted:         StateSucceeded,
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// CanTransition reports whether from -> to is a legal edge. FAILED is
// reachable from every non-terminal state.
func CanTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	return nextState[from] == to
}
