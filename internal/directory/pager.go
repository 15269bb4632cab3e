// Package directory implements the public directory browsing state:
// typed filter criteria, debounced search, and cursor-based pagination
// with accumulation across pages.
package directory

import (
	"context"
	"sync"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// FetchFunc loads one page of results for a criteria set. An empty cursor
// requests the first page.
type FetchFunc[T any] func(ctx context.Context, criteria domain.Criteria, limit int, cursor string) ([]T, domain.PageInfo, error)

// DefaultPageSize is the page size used when none is configured
const DefaultPageSize = 20

// Pager accumulates pages of directory results for one criteria set.
// Changing the criteria discards the accumulation and restarts from the
// first page; responses that arrive after the criteria changed are dropped.
type Pager[T any] struct {
	mu sync.Mutex

	fetch    FetchFunc[T]
	market   string
	pageSize int

	criteria domain.Criteria
	items    []T
	page     domain.PageInfo
	loaded   bool
	loading  bool
	lastErr  error

	// generation increments on every criteria change. A fetch captures the
	// generation when it starts and its result is discarded if the
	// generation moved while the request was in flight.
	generation uint64
}

// NewPager creates a pager pinned to a geographic market. The market
// survives Clear; everything else resets.
func NewPager[T any](fetch FetchFunc[T], market string, pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{
		fetch:    fetch,
		market:   market,
		pageSize: pageSize,
		criteria: domain.DefaultCriteria(market),
	}
}

// Criteria returns the active criteria
func (p *Pager[T]) Criteria() domain.Criteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.criteria
}

// Items returns the accumulated results
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// HasMore reports whether another page can be loaded
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.loaded || p.page.HasMore
}

// Total returns the server-reported total for the active criteria
func (p *Pager[T]) Total() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page.Total
}

// Err returns the error from the most recent load, if any
func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// SetCriteria replaces the active criteria and discards the accumulated
// results. A no-op when the new criteria select the same result set.
func (p *Pager[T]) SetCriteria(criteria domain.Criteria) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.criteria.Equal(criteria) {
		return
	}
	p.resetLocked(criteria)
}

// Clear resets every filter except the pinned market and discards the
// accumulated results
func (p *Pager[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	cleared := domain.DefaultCriteria(p.market)
	if p.criteria.Equal(cleared) {
		return
	}
	p.resetLocked(cleared)
}

func (p *Pager[T]) resetLocked(criteria domain.Criteria) {
	p.criteria = criteria
	p.items = nil
	p.page = domain.PageInfo{}
	p.loaded = false
	p.lastErr = nil
	p.generation++
}

// Load fetches the next page and appends it to the accumulation. The first
// call after a criteria change fetches the first page. Returns the full
// accumulated slice. A load that returns after the criteria changed leaves
// the state untouched.
func (p *Pager[T]) Load(ctx context.Context) ([]T, error) {
	p.mu.Lock()
	if p.loaded && !p.page.HasMore {
		out := make([]T, len(p.items))
		copy(out, p.items)
		p.mu.Unlock()
		return out, nil
	}
	criteria := p.criteria
	cursor := p.page.EndCursor
	gen := p.generation
	p.loading = true
	p.mu.Unlock()

	items, page, err := p.fetch(ctx, criteria, p.pageSize, cursor)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if gen != p.generation {
		// Stale response: the filters changed while the request was in
		// flight. Keep whatever the newer criteria have accumulated.
		out := make([]T, len(p.items))
		copy(out, p.items)
		return out, nil
	}
	if err != nil {
		p.lastErr = err
		return nil, err
	}

	p.items = append(p.items, items...)
	p.page = page
	p.loaded = true
	p.lastErr = nil

	out := make([]T, len(p.items))
	copy(out, p.items)
	return out, nil
}
