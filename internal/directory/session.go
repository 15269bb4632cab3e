package directory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
)

// Browse couples a pager with debounced search input for one directory
// surface. Typed search text is staged; once input has been quiet for the
// interval it is promoted into the active criteria, which discards the
// accumulation like any other criteria change.
type Browse[T any] struct {
	pager  *Pager[T]
	search *Debouncer
}

// NewBrowse creates a browse surface pinned to a market
func NewBrowse[T any](fetch FetchFunc[T], market string, pageSize int) *Browse[T] {
	return newBrowse(fetch, market, pageSize, SearchDebounceInterval)
}

func newBrowse[T any](fetch FetchFunc[T], market string, pageSize int, interval time.Duration) *Browse[T] {
	b := &Browse[T]{pager: NewPager(fetch, market, pageSize)}
	b.search = NewDebouncer(interval, b.promoteSearch)
	return b
}

func (b *Browse[T]) promoteSearch(text string) {
	criteria := b.pager.Criteria()
	criteria.Search = strings.TrimSpace(text)
	b.pager.SetCriteria(criteria)
}

// SetSearchText stages typed search input for debounced promotion
func (b *Browse[T]) SetSearchText(text string) {
	b.search.Stage(text)
}

// SubmitSearch promotes the staged search text immediately
func (b *Browse[T]) SubmitSearch() {
	b.search.Flush()
}

// SetCriteria replaces the active filters. Staged search text is dropped;
// the new criteria carry their own search field.
func (b *Browse[T]) SetCriteria(criteria domain.Criteria) {
	b.search.Cancel()
	b.pager.SetCriteria(criteria)
}

// Clear resets every filter except the pinned market and drops any staged
// search text
func (b *Browse[T]) Clear() {
	b.search.Cancel()
	b.pager.Clear()
}

// Load fetches the next page and returns the full accumulation
func (b *Browse[T]) Load(ctx context.Context) ([]T, error) {
	return b.pager.Load(ctx)
}

// Items returns the accumulated results
func (b *Browse[T]) Items() []T { return b.pager.Items() }

// Criteria returns the active criteria
func (b *Browse[T]) Criteria() domain.Criteria { return b.pager.Criteria() }

// HasMore reports whether another page can be loaded
func (b *Browse[T]) HasMore() bool { return b.pager.HasMore() }

// Total returns the server-reported total for the active criteria
func (b *Browse[T]) Total() int64 { return b.pager.Total() }

// Close stops the search debouncer. The surface refuses further staged
// input afterwards.
func (b *Browse[T]) Close() { b.search.Stop() }

// Session is one visitor's browsing state: an events surface and a
// restaurants surface sharing the pinned market
type Session struct {
	Events      *Browse[domain.EventResponse]
	Restaurants *Browse[domain.RestaurantResponse]
}

// Close tears down both surfaces
func (s *Session) Close() {
	s.Events.Close()
	s.Restaurants.Close()
}

// Sessions manages the open browse sessions, keyed by an opaque id
// handed to the client on open.
type Sessions struct {
	mu          sync.Mutex
	market      string
	pageSize    int
	events      FetchFunc[domain.EventResponse]
	restaurants FetchFunc[domain.RestaurantResponse]
	open        map[string]*Session
}

// NewSessions creates an empty browse session manager
func NewSessions(market string, pageSize int, events FetchFunc[domain.EventResponse], restaurants FetchFunc[domain.RestaurantResponse]) *Sessions {
	return &Sessions{
		market:      market,
		pageSize:    pageSize,
		events:      events,
		restaurants: restaurants,
		open:        make(map[string]*Session),
	}
}

// Open creates a new browse session and returns its id
func (m *Sessions) Open() (string, *Session) {
	session := &Session{
		Events:      NewBrowse(m.events, m.market, m.pageSize),
		Restaurants: NewBrowse(m.restaurants, m.market, m.pageSize),
	}
	id := uuid.NewString()
	m.mu.Lock()
	m.open[id] = session
	m.mu.Unlock()
	return id, session
}

// Get returns an open session by id
func (m *Sessions) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.open[id]
	if !ok {
		return nil, common.ErrSessionNotFound
	}
	return session, nil
}

// Close tears down an open session. Unknown ids are no-ops.
func (m *Sessions) Close(id string) {
	m.mu.Lock()
	session, ok := m.open[id]
	delete(m.open, id)
	m.mu.Unlock()
	if ok {
		session.Close()
	}
}
