package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate-limit cooldown + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.PlayerProvider {
	base := selectProvider(cfg, f.logger)
	// After a 429 the cooldown answers locally until Retry-After has passed.
	limited := providers.NewRateLimitedProvider(base, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Balldontlie.Provider, base), cfg.Retry)
}
