package composer

import (
	"errors"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
)

// RecordSource loads persisted newsletter data for the builder
type RecordSource interface {
	FindByID(id uint64) (*domain.Newsletter, error)
	ListEntries(newsletterID uint64, limit int, cursor string) ([]*domain.NewsletterEntry, domain.PageInfo, error)
}

// EntriesPageSize is the page size for auto-linked entry loading
const EntriesPageSize = 50

// Aggregator fills the composition store from persistence: the saved
// newsletter record and the paged auto-linked entries. A load that fails
// leaves the already-loaded state untouched.
type Aggregator struct {
	store    *Store
	source   RecordSource
	pageSize int
}

// NewAggregator creates an aggregator bound to one store
func NewAggregator(store *Store, source RecordSource) *Aggregator {
	return &Aggregator{store: store, source: source, pageSize: EntriesPageSize}
}

// Open makes the store hold the given newsletter. Opening the already
// active newsletter is a no-op that keeps every in-progress edit. Opening
// a different one resets the store, backfills the persisted record, and
// loads the first page of entries with every entry selected.
func (a *Aggregator) Open(id uint64) error {
	reset := a.store.InitForNewsletter(id)
	if !reset {
		return nil
	}

	record, err := a.source.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNewsletterNotFound
		}
		return err
	}
	a.store.Backfill(record)

	entries, page, err := a.source.ListEntries(id, a.pageSize, "")
	if err != nil {
		return err
	}
	a.store.SetEntries(toEntryViews(entries), page)
	return nil
}

// LoadMore fetches the next page of entries and appends it, keeping every
// already-loaded entry and its selection. A no-op when the requested
// newsletter is not the active one or no further page exists.
func (a *Aggregator) LoadMore(id uint64) error {
	if a.store.ActiveID() != id {
		return nil
	}
	snapshot := a.store.Snapshot()
	if len(snapshot.Entries) > 0 && !snapshot.EntriesPage.HasMore {
		return nil
	}

	entries, page, err := a.source.ListEntries(id, a.pageSize, snapshot.EntriesPage.EndCursor)
	if err != nil {
		return err
	}
	a.store.AppendEntries(toEntryViews(entries), page)
	return nil
}

// Refill re-reads the persisted record into the active composition,
// used after an external change such as a save or a new entry linkage.
// A no-op for an inactive newsletter.
func (a *Aggregator) Refill(id uint64) error {
	if a.store.ActiveID() != id {
		return nil
	}
	record, err := a.source.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNewsletterNotFound
		}
		return err
	}
	a.store.Backfill(record)
	return nil
}

func toEntryViews(entries []*domain.NewsletterEntry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			ID:        e.ID,
			EventID:   e.EventID,
			Event:     e.Event.ToSummary(),
			Locations: e.Locations,
		})
	}
	return views
}
