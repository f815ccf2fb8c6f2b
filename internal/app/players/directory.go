// Package players reads the upstream player directory with caching, cursor paging and
// input pacing (debounced search, throttled infinite scroll).
package players

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

const (
	DefaultSearchTTL = 10 * time.Minute
	DefaultLookupTTL = 5 * time.Minute
)

// Config sets cache lifetimes. Zero values pick the defaults; negative values disable a cache.
type Config struct {
	SearchTTL time.Duration
	LookupTTL time.Duration
	Now       func() time.Time
}

// Directory serves player pages from two TTL caches in front of a provider.
// Identical concurrent misses share one upstream call. Failures are not cached.
type Directory struct {
	provider providers.PlayerProvider
	logger   *slog.Logger
	metrics  *metrics.Recorder
	search   *ttlCache[players.Page]
	lookup   *ttlCache[players.Page]
	flights  singleflight.Group
}

// NewDirectory wraps provider with the search and lookup caches.
func NewDirectory(provider providers.PlayerProvider, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Directory {
	if cfg.SearchTTL == 0 {
		cfg.SearchTTL = DefaultSearchTTL
	}
	if cfg.LookupTTL == 0 {
		cfg.LookupTTL = DefaultLookupTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Directory{
		provider: provider,
		logger:   logger,
		metrics:  recorder,
		search:   newTTLCache[players.Page](cfg.SearchTTL, cfg.Now),
		lookup:   newTTLCache[players.Page](cfg.LookupTTL, cfg.Now),
	}
}

// FetchPage returns one page of a filtered search. A nil cursor requests the first page.
func (d *Directory) FetchPage(ctx context.Context, cursor *int, filters players.Filters, pageSize int) (players.Page, error) {
	q := players.Query{Filters: filters, Cursor: cursor, PerPage: pageSize}
	return d.fetch(ctx, metrics.CacheSearch, d.search, q)
}

// FetchByIDs resolves a set of players in a single page. An empty set never reaches the network.
func (d *Directory) FetchByIDs(ctx context.Context, ids []int, pageSize int) (players.Page, error) {
	if len(ids) == 0 {
		return players.Page{Data: []players.Player{}, Meta: players.Meta{PerPage: pageSize}}, nil
	}
	q := players.Query{Filters: players.Filters{PlayerIDs: ids}, PerPage: pageSize}
	return d.fetch(ctx, metrics.CacheLookup, d.lookup, q)
}

// Pages starts a lazy cursor walk over a filtered search.
func (d *Directory) Pages(filters players.Filters, pageSize int) *Pager {
	return &Pager{dir: d, filters: filters, pageSize: pageSize}
}

func (d *Directory) fetch(ctx context.Context, cacheName string, cache *ttlCache[players.Page], q players.Query) (players.Page, error) {
	key := q.Key()
	if page, ok := cache.get(key); ok {
		d.metrics.RecordCacheLookup(cacheName, true)
		return clonePage(page), nil
	}
	d.metrics.RecordCacheLookup(cacheName, false)

	if d.provider == nil {
		return players.Page{}, providers.ErrProviderUnavailable
	}

	// The shared call must not die with whichever caller arrived first.
	flightCtx := context.WithoutCancel(ctx)
	ch := d.flights.DoChan(cacheName+"|"+key, func() (any, error) {
		page, err := d.provider.FetchPlayers(flightCtx, q)
		if err != nil {
			return nil, err
		}
		cache.set(key, page)
		return page, nil
	})

	select {
	case <-ctx.Done():
		return players.Page{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			d.logFailure(ctx, cacheName, q, res.Err)
			return players.Page{}, res.Err
		}
		return clonePage(res.Val.(players.Page)), nil
	}
}

func (d *Directory) logFailure(ctx context.Context, cacheName string, q players.Query, err error) {
	logger := logging.FromContext(ctx, d.logger)
	attrs := []any{slog.String("cache", cacheName), slog.Int("per_page", q.PerPage)}
	if q.Cursor != nil {
		attrs = append(attrs, slog.Int(logging.FieldCursor, *q.Cursor))
	}
	var rlErr *providers.RateLimitError
	if errors.As(err, &rlErr) {
		logging.Warn(logger, "player directory rate limited", append(attrs, slog.Duration("retry_after", rlErr.RetryAfter))...)
		return
	}
	logging.Error(logger, "player directory fetch failed", err, attrs...)
}

func clonePage(p players.Page) players.Page {
	out := p
	out.Data = append(make([]players.Player, 0, len(p.Data)), p.Data...)
	if p.Meta.NextCursor != nil {
		next := *p.Meta.NextCursor
		out.Meta.NextCursor = &next
	}
	return out
}
