package providers

import (
	"context"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

// PlayerProvider fetches one cursor page of normalized players.
// A nil Query.Cursor requests the first page.
type PlayerProvider interface {
	FetchPlayers(ctx context.Context, q players.Query) (players.Page, error)
}

// PlayerProviderFunc adapts a function to PlayerProvider.
type PlayerProviderFunc func(ctx context.Context, q players.Query) (players.Page, error)

func (f PlayerProviderFunc) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	return f(ctx, q)
}
