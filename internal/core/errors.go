package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an onboarding flow failed
type ErrorKind string

const (
	KindMissingAuthorizationCode ErrorKind = "MissingAuthorizationCode"
	KindTokenExchange            ErrorKind = "TokenExchangeError"
	KindDiscovery                ErrorKind = "DiscoveryError"
	KindWebhookSubscription      ErrorKind = "WebhookSubscriptionError"
	KindPersistence              ErrorKind = "PersistenceError"
	KindUnexpected               ErrorKind = "UnexpectedError"
)

var (
	ErrMissingCode          = errors.New("authorization code is missing")
	ErrMissingVerifier      = errors.New("code verifier is missing")
	ErrNoChannelsDiscovered = errors.New("no channels discovered for token")
	ErrUnknownProvider      = errors.New("unknown provider")
	ErrSettingsNotFound     = errors.New("integration settings not found")
	ErrIncompleteSettings   = errors.New("integration settings incomplete")
	ErrEmptyToken           = errors.New("provider returned an empty access token")
)

// FlowError is a classified failure at one pipeline state
type FlowError struct {
	Kind  ErrorKind
	Stage State
	Err   error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// Classify wraps err with a kind unless it already carries one
func Classify(kind ErrorKind, stage State, err error) *FlowError {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe
	}
	return &FlowError{Kind: kind, Stage: stage, Err: err}
}

// KindOf returns the taxonomy of err, UnexpectedError if unclassified
func KindOf(err error) ErrorKind {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnexpected
}

// ProviderError is an error payload returned by a provider API
type ProviderError struct {
	Provider   string
	Operation  string
	StatusCode int
	Code       int
	Type       string
	Message    string
	Body       string // raw response, kept for the diagnostics response snapshot
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected response"
	}
	if e.Code != 0 {
		return fmt.Sprintf("%s %s failed (status %d, code %d): %s",
			e.Provider, e.Operation, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("%s %s failed (status %d): %s", e.Provider, e.Operation, e.StatusCode, msg)
}
