package players

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
)

// SearchResult is the outcome of one debounced search.
type SearchResult struct {
	Term string
	Key  string
	Page players.Page
	Err  error
}

// Search debounces typed input into directory queries and publishes only the result for the
// most recent term. Responses that arrive after a newer term was issued are dropped.
type Search struct {
	ctx      context.Context
	cancel   context.CancelFunc
	dir      *Directory
	logger   *slog.Logger
	pageSize int
	input    *Debouncer[string]
	results  chan SearchResult
	wg       sync.WaitGroup

	mu      sync.Mutex
	latest  string
	dropped int
	closed  bool
}

// NewSearch starts a search session bound to ctx.
func NewSearch(ctx context.Context, dir *Directory, logger *slog.Logger, pageSize int, debounce time.Duration) *Search {
	ctx, cancel := context.WithCancel(ctx)
	s := &Search{
		ctx:      ctx,
		cancel:   cancel,
		dir:      dir,
		logger:   logger,
		pageSize: pageSize,
		results:  make(chan SearchResult, 1),
	}
	s.input = NewDebouncer(debounce, s.issue)
	return s
}

// Input submits the current text of the search box.
func (s *Search) Input(term string) {
	s.input.Submit(strings.TrimSpace(term))
}

// Flush issues the pending term without waiting for the quiet period.
func (s *Search) Flush() {
	s.input.Flush()
}

// Results delivers the latest search outcome. Only the newest undelivered result is kept.
func (s *Search) Results() <-chan SearchResult {
	return s.results
}

// Dropped counts responses discarded because a newer term superseded them.
func (s *Search) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close stops input, cancels in-flight lookups and waits for them to finish.
func (s *Search) Close() {
	s.input.Stop()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	close(s.results)
}

func (s *Search) issue(term string) {
	filters := players.Filters{Search: term}
	key := players.Query{Filters: filters, PerPage: s.pageSize}.Key()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = key
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		page, err := s.dir.FetchPage(s.ctx, nil, filters, s.pageSize)
		s.publish(SearchResult{Term: term, Key: key, Page: page, Err: err})
	}()
}

func (s *Search) publish(res SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ctx.Err() != nil {
		return
	}
	if res.Key != s.latest {
		s.dropped++
		logging.Debug(s.logger, "stale search result dropped", slog.String("term", res.Term))
		return
	}
	select {
	case <-s.results:
	default:
	}
	s.results <- res
}
