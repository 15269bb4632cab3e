// Package composer holds the server-side newsletter builder state: one
// composition per open issue, mutated synchronously and observed through
// debounced snapshots, plus the aggregator that fills it from persistence
// and the renderer that turns it into the final email HTML.
package composer

import (
	"time"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// EntryView is an auto-linked event entry as the builder sees it. The
// Selected flag is builder-local and never persisted.
type EntryView struct {
	ID        uint64              `json:"id"`
	EventID   uint64              `json:"event_id"`
	Event     domain.EventSummary `json:"event"`
	Locations []string            `json:"locations"`
	Selected  bool                `json:"selected"`
}

// RestaurantPick is a manually curated restaurant in the issue
type RestaurantPick struct {
	RestaurantID uint64    `json:"restaurant_id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"image_url"`
	Description  string    `json:"description"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Position     int       `json:"position"`
	PickOfMonth  bool      `json:"pick_of_month"`
	AddedAt      time.Time `json:"added_at"`
}

// FeaturedEvent is a manually curated event, independent of the
// auto-linked entries
type FeaturedEvent struct {
	EventID    uint64              `json:"event_id"`
	Event      domain.EventSummary `json:"event"`
	Position   int                 `json:"position"`
	IsFeatured bool                `json:"is_featured"`
}

// Composition is an immutable snapshot of the builder state for one issue.
// Observers receive copies; mutating a snapshot never affects the store.
type Composition struct {
	NewsletterID uint64     `json:"newsletter_id"`
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	SendDate     *time.Time `json:"send_date"`
	Market       string     `json:"market"`
	Locations    []string   `json:"locations"`

	Entries     []EntryView     `json:"entries"`
	EntriesPage domain.PageInfo `json:"entries_page"`

	Restaurants    []RestaurantPick        `json:"restaurants"`
	FeaturedEvents []FeaturedEvent         `json:"featured_events"`
	Editorials     []domain.EditorialBlock `json:"editorials"`

	Settings domain.NewsletterSettings `json:"settings"`
	Campaign domain.CampaignState      `json:"campaign"`
}

// SelectedEntries returns the entries currently included in the issue
func (c Composition) SelectedEntries() []EntryView {
	var out []EntryView
	for _, e := range c.Entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// PickOfMonth returns the designated pick of the month. When none is
// explicitly flagged, the first pick stands in so the rendered issue
// always has one when any picks exist.
func (c Composition) PickOfMonth() (RestaurantPick, bool) {
	for _, p := range c.Restaurants {
		if p.PickOfMonth {
			return p, true
		}
	}
	if len(c.Restaurants) > 0 {
		return c.Restaurants[0], true
	}
	return RestaurantPick{}, false
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func (c Composition) clone() Composition {
	out := c
	out.Locations = copyStrings(c.Locations)
	out.Entries = make([]EntryView, len(c.Entries))
	for i, e := range c.Entries {
		e.Locations = copyStrings(e.Locations)
		out.Entries[i] = e
	}
	out.Restaurants = append([]RestaurantPick(nil), c.Restaurants...)
	out.FeaturedEvents = append([]FeaturedEvent(nil), c.FeaturedEvents...)
	out.Editorials = append([]domain.EditorialBlock(nil), c.Editorials...)
	out.Settings.ListIDs = copyStrings(c.Settings.ListIDs)
	out.Settings.SegmentIDs = copyStrings(c.Settings.SegmentIDs)
	out.Settings.TestRecipients = copyStrings(c.Settings.TestRecipients)
	return out
}
