package core

import "context"

// LogEntry is the input for one diagnostics record
type LogEntry struct {
	Context  string // e.g. handleFacebookCallback
	Provider string
	Stage    State
	Kind     ErrorKind // error records only
	Message  string
	Err      error
	Detail   string
	UserID   string
	Request  map[string]any
	Response string
	Details  map[string]any
}

// DiagnosticsLogger records onboarding milestones and failures.
// LogError is synchronous and returns the stored record ID.
type DiagnosticsLogger interface {
	LogError(ctx context.Context, entry LogEntry) (string, error)
	LogInfo(ctx context.Context, entry LogEntry)
}
