// Package backend opens the kvstore.Store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/file"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/memory"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/redis"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/sqlstore"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open builds the configured store and applies the key prefix.
func Open(ctx context.Context, cfg config.StorageConfig) (kvstore.Store, error) {
	store, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return kvstore.WithPrefix(store, cfg.KeyPrefix), nil
}

func open(ctx context.Context, cfg config.StorageConfig) (kvstore.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverMemory:
		return memory.New(), nil
	case DriverFile, "":
		return file.New(cfg.Path)
	case DriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("storage: redis driver requires a redis url")
		}
		return redis.New(ctx, cfg.RedisURL)
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = "roster.db"
		} else if filepath.Ext(path) == "" {
			path = filepath.Join(path, "roster.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return sqlstore.OpenSQLite(path)
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("storage: postgres driver requires a dsn")
		}
		return sqlstore.OpenPostgres(cfg.DSN)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
