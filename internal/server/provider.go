package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-roster-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.PlayerProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Balldontlie.Provider)) {
	case config.ProviderBalldontlie, "":
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL: cfg.Balldontlie.BaseURL,
			APIKey:  cfg.Balldontlie.APIKey,
		})
	case config.ProviderFixture:
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Balldontlie.Provider))
		}
		return fixture.New()
	}
}
