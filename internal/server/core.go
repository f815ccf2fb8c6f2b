package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	appplayers "github.com/preston-bernstein/nba-roster-service/internal/app/players"
	appsession "github.com/preston-bernstein/nba-roster-service/internal/app/session"
	appteams "github.com/preston-bernstein/nba-roster-service/internal/app/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/backend"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

var openStorage = backend.Open

// Core is the roster application without a transport: storage, the two stores and
// the player directory. The server and the CLI both run on it.
type Core struct {
	KV        kvstore.Store
	Teams     *appteams.Store
	Sessions  *appsession.Store
	Directory *appplayers.Directory
	Provider  providers.PlayerProvider
}

// OpenCore opens the configured storage and upstream and assembles the stores.
func OpenCore(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Core, error) {
	kv, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	provider := newProviderFactory(logger, recorder).build(cfg)
	core, err := newCore(cfg, logger, recorder, kv, provider)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return core, nil
}

func newCore(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, kv kvstore.Store, provider providers.PlayerProvider) (*Core, error) {
	policy, err := appteams.ParsePolicy(cfg.Roster.MembershipPolicy)
	if err != nil {
		return nil, err
	}
	return &Core{
		KV:       kv,
		Provider: provider,
		Teams:    appteams.NewStore(kv, logger, recorder, appteams.Options{Policy: policy}),
		Sessions: appsession.NewStore(kv, logger, recorder, appsession.Options{PasswordHash: cfg.Roster.PasswordHash}),
		Directory: appplayers.NewDirectory(provider, logger, recorder, appplayers.Config{
			SearchTTL: cfg.Directory.SearchCacheTTL,
			LookupTTL: cfg.Directory.LookupCacheTTL,
		}),
	}, nil
}

// Close stops the team store and releases storage.
func (c *Core) Close() error {
	return errors.Join(c.Teams.Close(), c.KV.Close())
}
