package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

// StaticProvider returns the same page for every query and counts calls.
type StaticProvider struct {
	Page  players.Page
	calls atomic.Int32
}

func (p *StaticProvider) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	_ = q
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return players.Page{}, err
	}
	return p.Page, nil
}

// Calls reports how many fetches reached the provider.
func (p *StaticProvider) Calls() int {
	return int(p.calls.Load())
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	return players.Page{}, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	return players.Page{}, providers.ErrProviderUnavailable
}
