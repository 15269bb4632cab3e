package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// pagedFetch serves a fixed item set in pages and records every call
type pagedFetch struct {
	mu    sync.Mutex
	items []string
	calls []string // cursors seen, in order
	err   error

	// block, when set, is closed by the test to release an in-flight fetch
	block chan struct{}

	// started, when set, is closed once a fetch is in flight so the test
	// can synchronize before releasing it
	started     chan struct{}
	startedOnce sync.Once
}

func (f *pagedFetch) fn(_ context.Context, _ domain.Criteria, limit int, cursor string) ([]string, domain.PageInfo, error) {
	if f.started != nil {
		f.startedOnce.Do(func() { close(f.started) })
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cursor)
	if f.err != nil {
		return nil, domain.PageInfo{}, f.err
	}

	offset := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "o:%d", &offset)
	}
	end := offset + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	page := domain.PageInfo{
		EndCursor: fmt.Sprintf("o:%d", end),
		HasMore:   end < len(f.items),
		Total:     int64(len(f.items)),
	}
	return f.items[offset:end], page, nil
}

func manyItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	return items
}

func TestPagerAccumulatesPages(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(5)}
	p := NewPager(fetch.fn, "FL", 2)

	items, err := p.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, p.HasMore())
	assert.Equal(t, int64(5), p.Total())

	items, err = p.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 4)

	items, err = p.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 5)
	assert.False(t, p.HasMore())

	// exhausted: no further fetch happens
	items, err = p.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, []string{"", "o:2", "o:4"}, fetch.calls)
}

func TestPagerCriteriaChangeRestartsFromFirstPage(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(6)}
	p := NewPager(fetch.fn, "FL", 2)

	_, err := p.Load(context.Background())
	assert.NoError(t, err)
	_, err = p.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, p.Items(), 4)

	criteria := p.Criteria()
	criteria.Search = "jazz"
	p.SetCriteria(criteria)

	assert.Empty(t, p.Items())
	assert.True(t, p.HasMore())

	items, err := p.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "", fetch.calls[len(fetch.calls)-1], "restarted from the first page")
}

func TestPagerSetCriteriaSameValueKeepsAccumulation(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(4)}
	p := NewPager(fetch.fn, "FL", 2)

	_, err := p.Load(context.Background())
	assert.NoError(t, err)

	p.SetCriteria(p.Criteria())
	assert.Len(t, p.Items(), 2)
}

func TestPagerClearPreservesMarket(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(4)}
	p := NewPager(fetch.fn, "FL", 2)

	criteria := p.Criteria()
	criteria.Search = "opera"
	criteria.FreeOnly = true
	p.SetCriteria(criteria)
	_, err := p.Load(context.Background())
	assert.NoError(t, err)

	p.Clear()
	assert.Empty(t, p.Items())
	assert.Equal(t, domain.DefaultCriteria("FL"), p.Criteria())
}

func TestPagerErrorKeepsAccumulation(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(5)}
	p := NewPager(fetch.fn, "FL", 2)

	_, err := p.Load(context.Background())
	assert.NoError(t, err)

	fetch.mu.Lock()
	fetch.err = errors.New("db down")
	fetch.mu.Unlock()

	_, err = p.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, p.Err())
	assert.Len(t, p.Items(), 2, "loaded pages survive a failed fetch")
}

func TestPagerDropsStaleResponse(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(6), block: make(chan struct{}), started: make(chan struct{})}
	p := NewPager(fetch.fn, "FL", 2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Load(context.Background())
	}()

	// change the criteria while the first fetch is still in flight
	<-fetch.started
	criteria := p.Criteria()
	criteria.Search = "ballet"
	p.SetCriteria(criteria)

	close(fetch.block)
	<-done

	// the stale first-page response must not leak into the new criteria
	assert.Empty(t, p.Items())
	assert.True(t, p.HasMore())
}
