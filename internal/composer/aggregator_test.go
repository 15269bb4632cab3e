package composer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
)

// fakeSource serves one newsletter record and a fixed set of entries in
// pages, mimicking the repository's offset-cursor contract
type fakeSource struct {
	record  *domain.Newsletter
	entries []*domain.NewsletterEntry

	findErr error
	listErr error

	listCalls int
}

func (f *fakeSource) FindByID(id uint64) (*domain.Newsletter, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.record == nil || f.record.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.record, nil
}

func (f *fakeSource) ListEntries(_ uint64, limit int, cursor string) ([]*domain.NewsletterEntry, domain.PageInfo, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, domain.PageInfo{}, f.listErr
	}
	offset := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "o:%d", &offset)
	}
	end := offset + limit
	if end > len(f.entries) {
		end = len(f.entries)
	}
	page := domain.PageInfo{
		EndCursor: fmt.Sprintf("o:%d", end),
		HasMore:   end < len(f.entries),
		Total:     int64(len(f.entries)),
	}
	return f.entries[offset:end], page, nil
}

func fakeEntries(n int) []*domain.NewsletterEntry {
	entries := make([]*domain.NewsletterEntry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, &domain.NewsletterEntry{
			ID:      uint64(i),
			EventID: uint64(i * 10),
			Event:   domain.Event{ID: uint64(i * 10), Title: fmt.Sprintf("Event %d", i)},
		})
	}
	return entries
}

func newTestAggregator(source *fakeSource, pageSize int) (*Store, *Aggregator) {
	store := NewStore()
	agg := NewAggregator(store, source)
	agg.pageSize = pageSize
	return store, agg
}

func TestAggregatorOpenBackfillsAndLoadsFirstPage(t *testing.T) {
	source := &fakeSource{
		record: &domain.Newsletter{
			ID:          3,
			Name:        "eScoop October",
			SubjectLine: "October in Sarasota",
			CampaignID:  "cmp-42",
		},
		entries: fakeEntries(5),
	}
	store, agg := newTestAggregator(source, 2)

	assert.NoError(t, agg.Open(3))

	snap := store.Snapshot()
	assert.Equal(t, "eScoop October", snap.Name)
	assert.Equal(t, "October in Sarasota", snap.Settings.SubjectLine)
	assert.Equal(t, domain.CampaignCreated, snap.Campaign.Status)
	assert.Equal(t, "cmp-42", snap.Campaign.CampaignID)

	assert.Len(t, snap.Entries, 2)
	assert.Len(t, snap.SelectedEntries(), 2, "first page arrives selected")
	assert.True(t, snap.EntriesPage.HasMore)
}

func TestAggregatorOpenUnknownNewsletter(t *testing.T) {
	source := &fakeSource{}
	_, agg := newTestAggregator(source, 2)

	assert.ErrorIs(t, agg.Open(99), common.ErrNewsletterNotFound)
}

func TestAggregatorReopenKeepsEdits(t *testing.T) {
	source := &fakeSource{record: &domain.Newsletter{ID: 3}, entries: fakeEntries(3)}
	store, agg := newTestAggregator(source, 10)

	assert.NoError(t, agg.Open(3))
	store.ToggleEntry(1)
	calls := source.listCalls

	assert.NoError(t, agg.Open(3))

	snap := store.Snapshot()
	assert.Len(t, snap.SelectedEntries(), 2, "deselection survives reopening")
	assert.Equal(t, calls, source.listCalls, "no reload for the active issue")
}

func TestAggregatorLoadMoreAccumulates(t *testing.T) {
	source := &fakeSource{record: &domain.Newsletter{ID: 3}, entries: fakeEntries(5)}
	store, agg := newTestAggregator(source, 2)

	assert.NoError(t, agg.Open(3))
	assert.NoError(t, agg.LoadMore(3))
	assert.Len(t, store.Snapshot().Entries, 4)

	assert.NoError(t, agg.LoadMore(3))
	snap := store.Snapshot()
	assert.Len(t, snap.Entries, 5)
	assert.False(t, snap.EntriesPage.HasMore)

	// exhausted: no further fetch
	calls := source.listCalls
	assert.NoError(t, agg.LoadMore(3))
	assert.Equal(t, calls, source.listCalls)
}

func TestAggregatorLoadMoreIgnoresInactiveNewsletter(t *testing.T) {
	source := &fakeSource{record: &domain.Newsletter{ID: 3}, entries: fakeEntries(5)}
	store, agg := newTestAggregator(source, 2)

	assert.NoError(t, agg.Open(3))
	calls := source.listCalls

	assert.NoError(t, agg.LoadMore(4))
	assert.Equal(t, calls, source.listCalls)
	assert.Len(t, store.Snapshot().Entries, 2)
}

func TestAggregatorLoadMoreErrorKeepsState(t *testing.T) {
	source := &fakeSource{record: &domain.Newsletter{ID: 3}, entries: fakeEntries(5)}
	store, agg := newTestAggregator(source, 2)

	assert.NoError(t, agg.Open(3))
	store.ToggleEntry(1)

	source.listErr = errors.New("db down")
	assert.Error(t, agg.LoadMore(3))

	snap := store.Snapshot()
	assert.Len(t, snap.Entries, 2, "loaded entries survive a failed page load")
	assert.Len(t, snap.SelectedEntries(), 1)
}

func TestAggregatorRefillUpdatesPersistedFields(t *testing.T) {
	source := &fakeSource{record: &domain.Newsletter{ID: 3, Name: "before"}, entries: fakeEntries(2)}
	store, agg := newTestAggregator(source, 10)

	assert.NoError(t, agg.Open(3))
	store.ToggleEntry(1)

	source.record.Name = "after"
	assert.NoError(t, agg.Refill(3))

	snap := store.Snapshot()
	assert.Equal(t, "after", snap.Name)
	assert.Len(t, snap.SelectedEntries(), 1, "entry selection is not part of the persisted record")
}
