package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/memory"
)

func TestOpenDrivers(t *testing.T) {
	mini := miniredis.RunT(t)
	dir := t.TempDir()

	cases := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{name: "memory", cfg: config.StorageConfig{Driver: DriverMemory}},
		{name: "file", cfg: config.StorageConfig{Driver: DriverFile, Path: filepath.Join(dir, "files")}},
		{name: "redis", cfg: config.StorageConfig{Driver: DriverRedis, RedisURL: "redis://" + mini.Addr()}},
		{name: "sqlite", cfg: config.StorageConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "db")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(ctx, tc.cfg)
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.Set(ctx, "nba_teams", []byte(`[]`)))
			got, err := store.Get(ctx, "nba_teams")
			require.NoError(t, err)
			require.Equal(t, `[]`, string(got))
		})
	}
}

func TestOpenAppliesPrefix(t *testing.T) {
	store, err := Open(context.Background(), config.StorageConfig{Driver: DriverMemory, KeyPrefix: "tenant:"})
	require.NoError(t, err)
	require.NotNil(t, store)
	_, isRaw := store.(*memory.Store)
	require.False(t, isRaw)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []config.StorageConfig{
		{Driver: "cassandra"},
		{Driver: DriverRedis},
		{Driver: DriverPostgres},
	} {
		_, err := Open(ctx, cfg)
		require.Error(t, err, cfg.Driver)
	}
}
