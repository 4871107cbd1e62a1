package bootstrap

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateConnectorConfig(cfg); err != nil {
		return fmt.Errorf("invalid connector configuration: %w", err)
	}
	return nil
}

// validateConnectorConfig checks the settings every enabled connector needs
func validateConnectorConfig(cfg *config.Config) error {
	if !cfg.FacebookEnabled && !cfg.ZaloEnabled {
		return errors.New("at least one of FACEBOOK_ENABLED or ZALO_ENABLED must be true")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", cfg.BaseURL)
	}

	for name, target := range map[string]string{
		"FRONTEND_URL":   cfg.FrontendURL,
		"ERROR_PAGE_URL": cfg.ErrorPageURL,
	} {
		if _, err := url.Parse(target); err != nil {
			return fmt.Errorf("%s is not a valid URL: %w", name, err)
		}
	}

	if cfg.FacebookEnabled && cfg.FacebookGraphVersion == "" {
		return errors.New("FACEBOOK_GRAPH_VERSION is required when FACEBOOK_ENABLED=true")
	}
	return nil
}
