package bootstrap

import (
	"context"
	"fmt"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/client"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/connector"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/models"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/services"

	"go.uber.org/zap"
)

// initializeConnectors creates the enabled provider connectors. All of them
// share one outbound HTTP client.
func initializeConnectors(
	cfg *config.Config,
	recorder core.Recorder,
	logger *zap.Logger,
) (*connector.Registry, error) {
	httpClient, err := client.NewProviderHTTPClient(cfg.ProviderTimeout, cfg.ProviderInsecureSkipVerify)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider HTTP client: %w", err)
	}
	retryClient, err := client.CreateRetryClient(
		httpClient,
		cfg.ProviderMaxRetries,
		cfg.ProviderRetryDelay,
		cfg.ProviderMaxRetryDelay,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider retry client: %w", err)
	}

	var connectors []core.Connector

	if cfg.FacebookEnabled {
		connectors = append(connectors, connector.NewFacebook(connector.FacebookOptions{
			GraphURL:              cfg.FacebookGraphURL,
			DialogURL:             cfg.FacebookDialogURL,
			GraphVersion:          cfg.FacebookGraphVersion,
			WebhookFields:         cfg.FacebookWebhookFields,
			PageSubscriptionToken: cfg.FacebookPageSubscriptionToken,
			MaxPages:              cfg.FacebookMaxPages,
		}, httpClient, retryClient, recorder, logger))
	}

	if cfg.ZaloEnabled {
		connectors = append(connectors, connector.NewZalo(connector.ZaloOptions{
			OAuthURL:   cfg.ZaloOAuthURL,
			OpenAPIURL: cfg.ZaloOpenAPIURL,
		}, retryClient, recorder, logger))
	}

	registry := connector.NewRegistry(connectors...)
	logger.Info("connectors initialized", zap.Strings("providers", registry.Names()))
	return registry, nil
}

// integrationSettingsFromConfig maps the environment onto settings rows for
// the enabled providers
func integrationSettingsFromConfig(cfg *config.Config) []*models.IntegrationSetting {
	var settings []*models.IntegrationSetting

	if cfg.FacebookEnabled {
		settings = append(settings, &models.IntegrationSetting{
			Provider:           connector.ProviderFacebook,
			AppID:              cfg.FacebookAppID,
			AppSecret:          cfg.FacebookAppSecret,
			Scopes:             models.StringArray(cfg.FacebookScopes),
			WebhookURL:         cfg.FacebookWebhookURL,
			WebhookVerifyToken: cfg.FacebookVerifyToken,
			PublicBaseURL:      cfg.BaseURL,
		})
	}
	if cfg.ZaloEnabled {
		settings = append(settings, &models.IntegrationSetting{
			Provider:           connector.ProviderZalo,
			AppID:              cfg.ZaloAppID,
			AppSecret:          cfg.ZaloAppSecret,
			WebhookURL:         cfg.ZaloWebhookURL,
			WebhookVerifyToken: cfg.ZaloVerifyToken,
			PublicBaseURL:      cfg.BaseURL,
		})
	}

	return settings
}

// seedIntegrationSettings inserts settings rows that do not exist yet.
// Rows already in the database win over the environment.
func seedIntegrationSettings(
	ctx context.Context,
	cfg *config.Config,
	settingsService *services.SettingsService,
) error {
	return settingsService.Seed(ctx, integrationSettingsFromConfig(cfg)...)
}
