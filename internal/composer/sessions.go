package composer

import (
	"sync"

	"github.com/localscoop/escoop-backend/internal/common"
)

// Session is one open builder: a composition store plus the aggregator
// that feeds it
type Session struct {
	Store      *Store
	Aggregator *Aggregator
}

// Sessions manages the open builder sessions, one per newsletter.
// Opening an already open newsletter returns the existing session with
// its state intact.
type Sessions struct {
	mu     sync.Mutex
	source RecordSource
	open   map[uint64]*Session
}

// NewSessions creates an empty session manager
func NewSessions(source RecordSource) *Sessions {
	return &Sessions{
		source: source,
		open:   make(map[uint64]*Session),
	}
}

// Open returns the session for a newsletter, creating and filling it on
// first open. A failed first fill tears the session down so a retry
// starts clean.
func (m *Sessions) Open(id uint64) (*Session, error) {
	m.mu.Lock()
	if session, ok := m.open[id]; ok {
		m.mu.Unlock()
		return session, nil
	}
	store := NewStore()
	session := &Session{
		Store:      store,
		Aggregator: NewAggregator(store, m.source),
	}
	m.open[id] = session
	m.mu.Unlock()

	if err := session.Aggregator.Open(id); err != nil {
		m.mu.Lock()
		delete(m.open, id)
		m.mu.Unlock()
		session.Store.Close()
		return nil, err
	}
	return session, nil
}

// Get returns the session for a newsletter if it is open
func (m *Sessions) Get(id uint64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.open[id]
	if !ok {
		return nil, common.ErrNewsletterNotFound
	}
	return session, nil
}

// Close tears down an open session. Unknown ids are no-ops.
func (m *Sessions) Close(id uint64) {
	m.mu.Lock()
	session, ok := m.open[id]
	delete(m.open, id)
	m.mu.Unlock()
	if ok {
		session.Store.Close()
	}
}
