package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"

	retry "github.com/appleboy/go-httpretry"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	maxBodyPreview  = 2048
)

// errorParser turns a non-2xx provider response into a typed error
type errorParser func(status int, body []byte) *core.ProviderError

// apiClient executes provider API calls through the shared retry client
type apiClient struct {
	provider   string
	retry      *retry.Client
	recorder   core.Recorder
	parseError errorParser
}

// call runs send, records the outcome and decodes a 2xx JSON body into out.
// The raw body is returned so callers can inspect provider-specific error
// envelopes that arrive with status 200.
func (a *apiClient) call(
	operation string,
	out any,
	send func() (*http.Response, error),
) ([]byte, error) {
	start := time.Now()
	body, err := a.exchange(operation, out, send)
	a.recorder.RecordProviderCall(a.provider, operation, err == nil, time.Since(start))
	return body, err
}

func (a *apiClient) exchange(
	operation string,
	out any,
	send func() (*http.Response, error),
) ([]byte, error) {
	resp, err := send()
	if err != nil {
		return nil, fmt.Errorf("%s %s request failed: %w", a.provider, operation, redactURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", a.provider, operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := a.parseError(resp.StatusCode, body)
		perr.Provider = a.provider
		perr.Operation = operation
		return body, perr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return body, &core.ProviderError{
				Provider:   a.provider,
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Message:    "invalid JSON response: " + err.Error(),
				Body:       preview(body),
			}
		}
	}
	return body, nil
}

func (a *apiClient) get(ctx context.Context, operation, rawURL string, out any) ([]byte, error) {
	return a.call(operation, out, func() (*http.Response, error) {
		return a.retry.Get(ctx, rawURL)
	})
}

func (a *apiClient) postForm(
	ctx context.Context,
	operation, rawURL string,
	form string,
	out any,
) ([]byte, error) {
	return a.call(operation, out, func() (*http.Response, error) {
		return a.retry.Post(ctx, rawURL, retry.WithBody(contentTypeForm, bytes.NewBufferString(form)))
	})
}

// redactURLError strips the query from the URL of a transport error in place.
// Graph calls carry app secrets and user tokens in the query string, and the
// retry error formats the wrapped error lazily.
func redactURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = redactURL(uerr.URL)
	}
	return err
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[redacted url]"
	}
	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

func preview(body []byte) string {
	if len(body) > maxBodyPreview {
		return string(body[:maxBodyPreview]) + "..."
	}
	return string(body)
}

// flexInt decodes a JSON number or a quoted number
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*f = flexInt(n)
	return nil
}

// flexString decodes a JSON string or a bare number (large numeric ids)
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(data)
	return nil
}

func expiresAt(seconds int64) *time.Time {
	if seconds <= 0 {
		return nil
	}
	t := time.Now().Add(time.Duration(seconds) * time.Second)
	return &t
}
