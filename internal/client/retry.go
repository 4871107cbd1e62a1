package client

import (
	"fmt"
	"net/http"
	"time"

	retry "github.com/appleboy/go-httpretry"
)

// CreateRetryClient wraps httpClient with exponential backoff retries.
// maxRetries of zero disables retrying, so authorization codes are never
// presented twice unless the operator opts in.
func CreateRetryClient(
	httpClient *http.Client,
	maxRetries int,
	retryDelay, maxRetryDelay time.Duration,
) (*retry.Client, error) {
	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(httpClient),
		retry.WithMaxRetries(maxRetries),
		retry.WithInitialRetryDelay(retryDelay),
		retry.WithMaxRetryDelay(maxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
