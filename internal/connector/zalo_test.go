package connector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/client"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector/connectortest"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/metrics"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/pkce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestZalo(t *testing.T, z *connectortest.Zalo) *Zalo {
	t.Helper()
	rc, err := client.CreateRetryClient(z.Client(), 0, 10*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, err)
	return NewZalo(ZaloOptions{
		OAuthURL:   z.URL,
		OpenAPIURL: z.URL,
	}, rc, metrics.NewNoopMetrics(), zap.NewNop())
}

func TestZaloAuthURL(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)
	assert.Equal(t, pkce.MethodS256, zl.PKCEMethod())
	assert.True(t, core.UsesPKCE(zl))

	pair, err := pkce.Generate(pkce.MethodS256)
	require.NoError(t, err)

	raw, err := zl.AuthURL(z.Settings(testBaseURL), core.AuthorizationRequest{
		Provider: ProviderZalo,
		State:    "state-1",
		PKCE:     pair,
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/v4/oa/permission", u.Path)

	q := u.Query()
	assert.Equal(t, "zalo-app", q.Get("app_id"))
	assert.Equal(t, pair.Challenge, q.Get("code_challenge"))
	s256, err := pkce.Challenge(pair.Verifier, pkce.MethodS256)
	require.NoError(t, err)
	assert.Equal(t, s256, q.Get("code_challenge"))
	assert.Empty(t, q.Get("code_challenge_method"))
	assert.Equal(t, "state-1", q.Get("state"))

	// the verifier rides in the callback URI
	redirect, err := url.Parse(q.Get("redirect_uri"))
	require.NoError(t, err)
	assert.Equal(t, "/api/zalo/auth/callback", redirect.Path)
	assert.Equal(t, pair.Verifier, redirect.Query().Get("code_verifier"))
}

func TestZaloAuthURL_RequiresChallenge(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	_, err := zl.AuthURL(z.Settings(testBaseURL), core.AuthorizationRequest{Provider: ProviderZalo})
	assert.ErrorIs(t, err, pkce.ErrInvalidVerifier)
}

func TestZaloExchangeToken(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	token, err := zl.ExchangeToken(context.Background(), z.Settings(testBaseURL), core.CallbackPayload{
		Code:         "zalo-code",
		CodeVerifier: "verifier-value",
	})
	require.NoError(t, err)

	assert.Equal(t, "ZALO_ACCESS", token.AccessToken)
	assert.Equal(t, "ZALO_REFRESH", token.RefreshToken)
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(90000*time.Second), *token.ExpiresAt, time.Minute)

	assert.Equal(t, []string{"token_exchange"}, z.Calls())
	assert.Equal(t, "verifier-value", z.LastVerifier())
	assert.Equal(t, "zalo-secret", z.LastSecret())
}

func TestZaloExchangeToken_ProviderError(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	settings := z.Settings(testBaseURL)
	settings.AppSecret = "wrong"
	_, err := zl.ExchangeToken(context.Background(), settings, core.CallbackPayload{
		Code:         "zalo-code",
		CodeVerifier: "verifier-value",
	})

	var perr *core.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, -14002, perr.Code)
	assert.Equal(t, "Invalid app", perr.Type)
	assert.Contains(t, err.Error(), "Invalid secret key")
}

func TestZaloExchangeToken_HTTPError(t *testing.T) {
	z := connectortest.NewZalo(t)
	z.Fail("token_exchange", connectortest.Failure{
		Status: http.StatusBadRequest,
		Body:   `<html>bad request</html>`,
	})
	zl := newTestZalo(t, z)

	_, err := zl.ExchangeToken(context.Background(), z.Settings(testBaseURL), core.CallbackPayload{
		Code:         "zalo-code",
		CodeVerifier: "verifier-value",
	})

	var perr *core.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Equal(t, "<html>bad request</html>", perr.Body)
}

func TestZaloExchangeToken_MissingInput(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	_, err := zl.ExchangeToken(context.Background(), z.Settings(testBaseURL),
		core.CallbackPayload{CodeVerifier: "v"})
	assert.ErrorIs(t, err, core.ErrMissingCode)

	_, err = zl.ExchangeToken(context.Background(), z.Settings(testBaseURL),
		core.CallbackPayload{Code: "c"})
	assert.ErrorIs(t, err, core.ErrMissingVerifier)

	assert.Empty(t, z.Calls())
}

func TestZaloDiscoverChannels(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	accounts, err := zl.DiscoverChannels(context.Background(), nil, &core.TokenPair{AccessToken: "ZALO_ACCESS"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	oa := accounts[0]
	assert.Equal(t, "2491302944280861639", oa.ExternalID)
	assert.Equal(t, "Acme OA", oa.Name)
	assert.Equal(t, models.ChannelSourceZalo, oa.Source)
	assert.True(t, oa.Verified)
	assert.Equal(t, "Retail", oa.Category)
}

func TestZaloDiscoverChannels_NumericID(t *testing.T) {
	z := connectortest.NewZalo(t)
	z.Fail("getoa", connectortest.Failure{
		Status: http.StatusOK,
		Body:   `{"error":0,"message":"Success","data":{"oa_id":1234567890123,"name":"Numeric OA"}}`,
	})
	zl := newTestZalo(t, z)

	accounts, err := zl.DiscoverChannels(context.Background(), nil, &core.TokenPair{AccessToken: "ZALO_ACCESS"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1234567890123", accounts[0].ExternalID)
}

func TestZaloDiscoverChannels_Errors(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	_, err := zl.DiscoverChannels(context.Background(), nil, &core.TokenPair{AccessToken: "expired"})
	var perr *core.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, -216, perr.Code)

	z.Fail("getoa", connectortest.Failure{Status: http.StatusOK, Body: `{"error":0,"data":{}}`})
	accounts, err := zl.DiscoverChannels(context.Background(), nil, &core.TokenPair{AccessToken: "ZALO_ACCESS"})
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestZaloSubscribeIsNoop(t *testing.T) {
	z := connectortest.NewZalo(t)
	zl := newTestZalo(t, z)

	require.NoError(t, zl.SubscribeApp(context.Background(), z.Settings(testBaseURL)))
	require.NoError(t, zl.SubscribeChannel(context.Background(), nil,
		core.ChannelAccount{ExternalID: "oa"}, &core.TokenPair{AccessToken: "t"}))
	assert.Error(t, zl.SubscribeChannel(context.Background(), nil, core.ChannelAccount{}, nil))
	assert.Empty(t, z.Calls())
}

func TestRegistry(t *testing.T) {
	z := connectortest.NewZalo(t)
	g := connectortest.NewGraph(t)
	r := NewRegistry(newTestFacebook(t, g), newTestZalo(t, z))

	assert.Equal(t, []string{"facebook", "zalo"}, r.Names())

	c, err := r.Get("Zalo")
	require.NoError(t, err)
	assert.Equal(t, "Zalo", c.DisplayName())

	_, err = r.Get("telegram")
	assert.ErrorIs(t, err, core.ErrUnknownProvider)
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A flexInt `json:"a"`
		B flexInt `json:"b"`
		C flexInt `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":"90000","c":null}`), &v))
	assert.Equal(t, flexInt(42), v.A)
	assert.Equal(t, flexInt(90000), v.B)
	assert.Equal(t, flexInt(0), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"soon"}`), &v))
}
