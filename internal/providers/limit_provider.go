package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

// rateLimitedProvider remembers the last upstream 429 and rejects calls locally until its
// Retry-After window has passed, so a throttled client does not keep hitting the API.
type rateLimitedProvider struct {
	next   PlayerProvider
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	until time.Time
	last  *RateLimitError
}

// NewRateLimitedProvider wraps next with a cooldown honoring upstream Retry-After.
func NewRateLimitedProvider(next PlayerProvider, logger *slog.Logger) PlayerProvider {
	return &rateLimitedProvider{
		next:   next,
		logger: logger,
		now:    time.Now,
	}
}

func (p *rateLimitedProvider) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return players.Page{}, ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		return players.Page{}, err
	}

	if wait, last := p.remaining(); wait > 0 {
		logWithProvider(ctx, p.logger, slog.LevelInfo, last.Provider, "rate limit cooldown active",
			slog.Duration("retry_after", wait),
		)
		return players.Page{}, &RateLimitError{
			Provider:   last.Provider,
			StatusCode: last.StatusCode,
			RetryAfter: wait,
		}
	}

	page, err := p.next.FetchPlayers(ctx, q)
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		p.mu.Lock()
		p.until = p.now().Add(rlErr.RetryAfter)
		p.last = rlErr
		p.mu.Unlock()
	}
	return page, err
}

func (p *rateLimitedProvider) remaining() (time.Duration, *RateLimitError) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return 0, nil
	}
	wait := p.until.Sub(p.now())
	if wait <= 0 {
		p.last = nil
		return 0, nil
	}
	return wait, p.last
}
