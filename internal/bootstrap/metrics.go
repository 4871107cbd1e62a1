package bootstrap

import (
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/config"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/metrics"

	"go.uber.org/zap"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config, logger *zap.Logger) core.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		logger.Info("Prometheus metrics initialized")
	}
	return recorder
}
