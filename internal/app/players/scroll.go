package players

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

// DefaultScrollThrottle is the minimum gap between accepted scroll triggers.
const DefaultScrollThrottle = time.Second

// ScrollTrigger turns "end of list is visible" events into Pager.Next calls.
// A trigger is accepted only when no fetch is running, a next page exists and
// more than the throttle interval has passed since the last accepted trigger.
type ScrollTrigger struct {
	pager    *Pager
	throttle time.Duration
	now      func() time.Time

	mu       sync.Mutex
	inFlight bool
	last     time.Time
}

// NewScrollTrigger builds a trigger for pager. A non-positive throttle uses DefaultScrollThrottle.
func NewScrollTrigger(pager *Pager, throttle time.Duration) *ScrollTrigger {
	if throttle <= 0 {
		throttle = DefaultScrollThrottle
	}
	return &ScrollTrigger{pager: pager, throttle: throttle, now: time.Now}
}

// Trigger fetches the next page when allowed. The bool reports whether a fetch was started.
func (s *ScrollTrigger) Trigger(ctx context.Context) (players.Page, bool, error) {
	if !s.accept() {
		return players.Page{}, false, nil
	}
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()
	page, err := s.pager.Next(ctx)
	return page, true, err
}

func (s *ScrollTrigger) accept() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight || !s.pager.HasNext() {
		return false
	}
	now := s.now()
	if !s.last.IsZero() && now.Sub(s.last) <= s.throttle {
		return false
	}
	s.last = now
	s.inFlight = true
	return true
}
