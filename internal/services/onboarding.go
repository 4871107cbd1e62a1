package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"

	"go.uber.org/zap"
)

// RequestScope carries everything one callback needs. The HTTP adapter
// builds a new scope per request; no field may be shared between requests.
type RequestScope struct {
	Connector   core.Connector
	Settings    core.SettingsProvider
	Channels    core.ChannelRepository
	Diagnostics core.DiagnosticsLogger

	UserID  string         // acting dashboard user, may be empty
	Request map[string]any // request snapshot for error records
}

// Result is the outcome of one callback run
type Result struct {
	State       core.State
	Transitions []core.State
	Channels    []*models.OmniChannel
	LogID       string // set on failure when the error record was written
	Err         *core.FlowError
}

// Succeeded reports whether the run reached SUCCEEDED
func (r *Result) Succeeded() bool {
	return r.State == core.StateSucceeded
}

// OnboardingService sequences token exchange, discovery, webhook
// subscription and persistence for one provider callback.
type OnboardingService struct {
	recorder core.Recorder
	logger   *zap.Logger
}

// NewOnboardingService creates the callback orchestrator
func NewOnboardingService(recorder core.Recorder, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{recorder: recorder, logger: logger.Named("onboarding")}
}

// CallbackContext is the diagnostics context label of a provider callback,
// e.g. handleZaloCallback
func CallbackContext(c core.Connector) string {
	return "handle" + c.DisplayName() + "Callback"
}

// stage is one transition of the pipeline. run must not touch HTTP state.
type stage struct {
	to        core.State
	kind      core.ErrorKind
	milestone string // info record written after the transition, if set
	run       func(ctx context.Context, f *flow) error
}

var pipeline = []stage{
	{to: core.StateCodeValidated, kind: core.KindMissingAuthorizationCode, run: validateCode},
	{to: core.StateTokenAcquired, kind: core.KindTokenExchange, run: exchangeToken, milestone: "access token acquired"},
	{to: core.StateChannelDiscovered, kind: core.KindDiscovery, run: discoverChannels, milestone: "channels discovered"},
	{to: core.StateWebhookSubscribed, kind: core.KindWebhookSubscription, run: subscribeWebhooks, milestone: "webhooks subscribed"},
	{to: core.StatePersisted, kind: core.KindPersistence, run: persistChannels},
}

// flow is the mutable state of one run
type flow struct {
	scope   RequestScope
	payload core.CallbackPayload

	settings *models.IntegrationSetting
	token    *core.TokenPair
	accounts []core.ChannelAccount
	channels []*models.OmniChannel

	panicStack string
}

// HandleCallback runs the pipeline and returns its result. It never panics
// and never returns a failed result without attempting to write exactly one
// error record.
func (s *OnboardingService) HandleCallback(
	ctx context.Context,
	scope RequestScope,
	payload core.CallbackPayload,
) *Result {
	start := time.Now()
	provider := scope.Connector.Name()
	f := &flow{scope: scope, payload: payload}
	result := &Result{State: core.StateReceived, Transitions: []core.State{core.StateReceived}}

	for _, st := range pipeline {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, f, result, core.Classify(core.KindUnexpected, result.State,
				fmt.Errorf("callback abandoned: %w", err)), start)
		}

		if err := s.runStage(ctx, f, st); err != nil {
			return s.fail(ctx, f, result, core.Classify(st.kind, result.State, err), start)
		}

		if !core.CanTransition(result.State, st.to) {
			return s.fail(ctx, f, result, core.Classify(core.KindUnexpected, result.State,
				fmt.Errorf("illegal transition %s -> %s", result.State, st.to)), start)
		}
		result.State = st.to
		result.Transitions = append(result.Transitions, st.to)

		if st.milestone != "" {
			s.milestone(ctx, f, st.to, st.milestone)
		}
	}

	result.State = core.StateSucceeded
	result.Transitions = append(result.Transitions, core.StateSucceeded)
	result.Channels = f.channels

	s.recorder.RecordChannelsPersisted(provider, len(f.channels))
	s.recorder.RecordCallback(provider, "success", time.Since(start))
	s.logger.Info("channel onboarding succeeded",
		zap.String("provider", provider),
		zap.Int("channels", len(f.channels)),
		zap.Duration("duration", time.Since(start)))

	return result
}

// runStage executes one stage and turns a panic into an UnexpectedError
func (s *OnboardingService) runStage(ctx context.Context, f *flow, st stage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			f.panicStack = string(debug.Stack())
			err = core.Classify(core.KindUnexpected, "", fmt.Errorf("panic: %v", r))
		}
	}()
	return st.run(ctx, f)
}

func (s *OnboardingService) milestone(ctx context.Context, f *flow, state core.State, message string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("milestone record failed", zap.Any("panic", r))
		}
	}()

	details := map[string]any{"channels": len(f.accounts)}
	if f.token != nil && f.token.ExpiresAt != nil {
		details["expires_at"] = f.token.ExpiresAt.Format(time.RFC3339)
	}

	f.scope.Diagnostics.LogInfo(ctx, core.LogEntry{
		Context:  CallbackContext(f.scope.Connector),
		Provider: f.scope.Connector.Name(),
		Stage:    state,
		Message:  message,
		UserID:   f.scope.UserID,
		Details:  details,
	})
}

// fail moves the run to FAILED and writes its single error record
func (s *OnboardingService) fail(
	ctx context.Context,
	f *flow,
	result *Result,
	fe *core.FlowError,
	start time.Time,
) *Result {
	if fe.Stage == "" {
		fe.Stage = result.State
	}
	provider := f.scope.Connector.Name()

	result.State = core.StateFailed
	result.Transitions = append(result.Transitions, core.StateFailed)
	result.Err = fe

	entry := core.LogEntry{
		Context:  CallbackContext(f.scope.Connector),
		Provider: provider,
		Stage:    fe.Stage,
		Kind:     fe.Kind,
		Message:  fmt.Sprintf("%s: %v", fe.Kind, fe.Err),
		Err:      fe,
		Detail:   fe.Err.Error(),
		UserID:   f.scope.UserID,
		Request:  f.scope.Request,
		Details: map[string]any{
			"code_present":     f.payload.Code != "",
			"verifier_present": f.payload.CodeVerifier != "",
			"channels":         len(f.accounts),
		},
	}
	if f.panicStack != "" {
		entry.Detail = fe.Err.Error() + "\n" + f.panicStack
	}
	if f.payload.ProviderError != "" {
		entry.Details["provider_error"] = f.payload.ProviderError
		entry.Details["provider_error_description"] = f.payload.ProviderErrorDescription
	}

	var perr *core.ProviderError
	if errors.As(fe, &perr) {
		entry.Response = perr.Body
		entry.Details["provider_operation"] = perr.Operation
		entry.Details["provider_status"] = perr.StatusCode
		if perr.Code != 0 {
			entry.Details["provider_code"] = perr.Code
		}
	}

	// the record must exist even if the client went away
	logID, err := f.scope.Diagnostics.LogError(context.WithoutCancel(ctx), entry)
	if err != nil {
		s.logger.Error("failed to write error record",
			zap.String("provider", provider),
			zap.String("kind", string(fe.Kind)),
			zap.NamedError("flow_error", fe),
			zap.Error(err))
	}
	result.LogID = logID

	s.recorder.RecordStageFailure(provider, fe.Stage, fe.Kind)
	s.recorder.RecordCallback(provider, string(fe.Kind), time.Since(start))

	return result
}

// validateCode: RECEIVED -> CODE_VALIDATED. No provider call happens here.
func validateCode(_ context.Context, f *flow) error {
	if f.payload.Code == "" {
		if f.payload.ProviderError != "" {
			return fmt.Errorf("%w: provider returned %s: %s", core.ErrMissingCode,
				f.payload.ProviderError, f.payload.ProviderErrorDescription)
		}
		return core.ErrMissingCode
	}
	if core.UsesPKCE(f.scope.Connector) && f.payload.CodeVerifier == "" {
		return core.ErrMissingVerifier
	}
	return nil
}

// exchangeToken: CODE_VALIDATED -> TOKEN_ACQUIRED. Settings are loaded
// fresh here; failing to load them is not a token exchange failure.
func exchangeToken(ctx context.Context, f *flow) error {
	settings, err := f.scope.Settings.GetIntegrationSetting(ctx, f.scope.Connector.Name())
	if err != nil {
		return core.Classify(core.KindUnexpected, core.StateCodeValidated, err)
	}
	f.settings = settings

	token, err := f.scope.Connector.ExchangeToken(ctx, settings, f.payload)
	if err != nil {
		return err
	}
	if token == nil || token.AccessToken == "" {
		return core.ErrEmptyToken
	}
	f.token = token
	return nil
}

// discoverChannels: TOKEN_ACQUIRED -> CHANNEL_DISCOVERED
func discoverChannels(ctx context.Context, f *flow) error {
	accounts, err := f.scope.Connector.DiscoverChannels(ctx, f.settings, f.token)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return core.ErrNoChannelsDiscovered
	}
	for i := range accounts {
		if accounts[i].Source == "" {
			accounts[i].Source = f.scope.Connector.Source()
		}
	}
	f.accounts = accounts
	return nil
}

// subscribeWebhooks: CHANNEL_DISCOVERED -> WEBHOOK_SUBSCRIBED. The app
// subscription runs once, before any channel subscription.
func subscribeWebhooks(ctx context.Context, f *flow) error {
	if err := f.scope.Connector.SubscribeApp(ctx, f.settings); err != nil {
		return fmt.Errorf("app subscription: %w", err)
	}
	for _, account := range f.accounts {
		if err := ctx.Err(); err != nil {
			return core.Classify(core.KindUnexpected, core.StateChannelDiscovered, err)
		}
		if err := f.scope.Connector.SubscribeChannel(ctx, f.settings, account, f.token); err != nil {
			return fmt.Errorf("channel %s subscription: %w", account.ExternalID, err)
		}
	}
	return nil
}

// persistChannels: WEBHOOK_SUBSCRIBED -> PERSISTED. Each upsert is atomic on
// its own; a failure stops the run.
func persistChannels(ctx context.Context, f *flow) error {
	channels := make([]*models.OmniChannel, 0, len(f.accounts))
	for _, account := range f.accounts {
		ch, err := f.scope.Channels.UpsertChannel(ctx, account, f.token, true)
		if err != nil {
			return fmt.Errorf("channel %s: %w", account.ExternalID, err)
		}
		channels = append(channels, ch)
	}
	f.channels = channels
	return nil
}
