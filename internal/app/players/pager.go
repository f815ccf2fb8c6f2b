package players

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

// ErrNoMorePages is returned by Pager.Next once the upstream stops returning a cursor.
var ErrNoMorePages = errors.New("no more pages")

// Pager walks a search one page at a time, following next_cursor.
// Calls to Next are serialized so a cursor is never fetched twice.
type Pager struct {
	dir      *Directory
	filters  players.Filters
	pageSize int

	mu    sync.Mutex
	pages []players.Page
	next  *int
	done  bool
}

// Next fetches the following page.
func (p *Pager) Next(ctx context.Context) (players.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return players.Page{}, ErrNoMorePages
	}
	page, err := p.dir.FetchPage(ctx, p.next, p.filters, p.pageSize)
	if err != nil {
		return players.Page{}, err
	}
	p.pages = append(p.pages, page)
	if page.HasNext() {
		next := *page.Meta.NextCursor
		p.next = &next
	} else {
		p.next = nil
		p.done = true
	}
	return page, nil
}

// HasNext reports whether Next can return another page.
func (p *Pager) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.done
}

// Reset discards loaded pages and starts again from the first page.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages = nil
	p.next = nil
	p.done = false
}

// PageCount returns how many pages have been loaded since the last reset.
func (p *Pager) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages)
}

// Loaded returns every player loaded so far, first occurrence wins.
func (p *Pager) Loaded() []players.Player {
	p.mu.Lock()
	defer p.mu.Unlock()
	lists := make([][]players.Player, len(p.pages))
	for i, page := range p.pages {
		lists[i] = page.Data
	}
	out := players.MergeUnique(lists...)
	if out == nil {
		out = []players.Player{}
	}
	return out
}

// Collect loads up to maxPages pages (all remaining when maxPages <= 0) and returns the merged players.
func (p *Pager) Collect(ctx context.Context, maxPages int) ([]players.Player, error) {
	for fetched := 0; maxPages <= 0 || fetched < maxPages; fetched++ {
		if _, err := p.Next(ctx); err != nil {
			if errors.Is(err, ErrNoMorePages) {
				break
			}
			return p.Loaded(), err
		}
	}
	return p.Loaded(), nil
}
