package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
)

const (
	defaultMaxRetries = 2
	defaultBaseDelay  = time.Second
	defaultMaxDelay   = 30 * time.Second
)

// retryingProvider wraps a PlayerProvider with exponential backoff.
// Only errors that IsRetryable accepts are attempted again.
type retryingProvider struct {
	inner        PlayerProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	cfg          config.RetryConfig
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps inner with retries. Zero or negative config values fall back to defaults
// (2 retries, 1s base, 30s cap). A negative MaxRetries disables retrying.
func NewRetryingProvider(inner PlayerProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, cfg config.RetryConfig) PlayerProvider {
	if providerName == "" {
		providerName = "provider"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	rp := &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		cfg:          cfg,
	}
	rp.newBackOff = rp.exponential
	return rp
}

// exponential yields base, base*2, base*4 ... capped at MaxDelay, without jitter.
func (r *retryingProvider) exponential() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.BaseDelay
	b.Multiplier = 2
	b.MaxInterval = r.cfg.MaxDelay
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (r *retryingProvider) FetchPlayers(ctx context.Context, q players.Query) (players.Page, error) {
	if r.inner == nil {
		return players.Page{}, ErrProviderUnavailable
	}

	attempt := 0
	operation := func() (players.Page, error) {
		attempt++
		start := time.Now()
		page, err := r.inner.FetchPlayers(ctx, q)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return page, nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			r.log(ctx, slog.LevelWarn, "provider rate limited",
				slog.Int(logging.FieldAttempt, attempt),
				slog.Duration("retry_after", rlErr.RetryAfter),
			)
		}
		if !IsRetryable(err) {
			return players.Page{}, backoff.Permanent(err)
		}
		return players.Page{}, err
	}

	notify := func(err error, delay time.Duration) {
		r.log(ctx, slog.LevelWarn, "provider fetch retry",
			slog.Int(logging.FieldAttempt, attempt),
			slog.Int("max_retries", r.cfg.MaxRetries),
			slog.Duration("delay", delay),
			slog.Any(logging.FieldError, err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.cfg.MaxRetries)), ctx)
	page, err := backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		if attempt > 1 {
			r.log(ctx, slog.LevelWarn, "provider fetch failed",
				slog.Int("attempts", attempt),
				slog.Any(logging.FieldError, err),
			)
		}
		return players.Page{}, err
	}
	return page, nil
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), level, r.providerName, msg, args...)
}
