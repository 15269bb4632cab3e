package composer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localscoop/escoop-backend/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func renderComposition() Composition {
	date := time.Date(2026, 10, 3, 19, 30, 0, 0, time.UTC)
	return Composition{
		NewsletterID: 1,
		Name:         "eScoop",
		Title:        "October in Sarasota",
		SendDate:     &date,
		Entries: []EntryView{
			{ID: 1, Selected: true, Event: domain.EventSummary{Title: "Jazz at the Bay", StartDate: &date, Venue: "Bayfront Park", City: "Sarasota", State: "FL"}},
			{ID: 2, Selected: false, Event: domain.EventSummary{Title: "Hidden Concert"}},
		},
		FeaturedEvents: []FeaturedEvent{
			{EventID: 10, IsFeatured: true, Event: domain.EventSummary{Title: "Gallery Walk", City: "Sarasota", State: "FL"}},
			{EventID: 11, IsFeatured: false, Event: domain.EventSummary{Title: "Unfeatured Show"}},
		},
		Restaurants: []RestaurantPick{
			{RestaurantID: 5, Name: "Indigenous", Description: "Farm to table", City: "Sarasota", State: "FL"},
			{RestaurantID: 6, Name: "Owen's Fish Camp", PickOfMonth: true},
		},
		Editorials: []domain.EditorialBlock{
			{Title: "From the desk", Content: "<p>Fall is here.</p>"},
		},
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	comp := renderComposition()
	banners := []domain.Banner{
		{ID: 1, Position: domain.BannerSlotBottom, IsActive: true, ImageURL: "https://cdn/b.png"},
		{ID: 2, Position: domain.BannerSlotTop, IsActive: true, ImageURL: "https://cdn/t.png"},
		{ID: 3, Position: domain.BannerSlotMiddle, IsActive: true, ImageURL: "https://cdn/m.png"},
	}

	first, err := r.Render(comp, banners)
	require.NoError(t, err)
	second, err := r.Render(comp, banners)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderExcludesDeselectedAndUnfeatured(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(renderComposition(), nil)
	require.NoError(t, err)

	assert.Contains(t, html, "Jazz at the Bay")
	assert.NotContains(t, html, "Hidden Concert")

	assert.Contains(t, html, "Gallery Walk")
	assert.NotContains(t, html, "Unfeatured Show")
}

func TestRenderOmitsEmptySections(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(Composition{Name: "eScoop"}, nil)
	require.NoError(t, err)

	assert.NotContains(t, html, "Featured This Issue")
	assert.NotContains(t, html, "Upcoming Events")
	assert.NotContains(t, html, "Where To Eat")
	assert.NotContains(t, html, "From The Editors")
	assert.Contains(t, html, "eScoop", "header always renders")
}

func TestRenderSectionOrderIsFixed(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(renderComposition(), nil)
	require.NoError(t, err)

	events := strings.Index(html, "Upcoming Events")
	featured := strings.Index(html, "Featured This Issue")
	editorials := strings.Index(html, "From The Editors")
	picks := strings.Index(html, "Where To Eat")

	assert.True(t, events >= 0 && events < featured, "events before featured")
	assert.True(t, featured < editorials, "featured before editorials")
	assert.True(t, editorials < picks, "editorials before picks")
}

func TestRenderFooterUnsubscribeLink(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(Composition{Name: "eScoop"}, nil)
	require.NoError(t, err)

	assert.Contains(t, html, `<a href="*|UNSUB|*"`)
	assert.Contains(t, html, "Unsubscribe")
}

func TestRenderBannerSlots(t *testing.T) {
	r := newTestRenderer(t)
	banners := []domain.Banner{
		{ID: 1, Position: domain.BannerSlotMiddle, IsActive: true, ImageURL: "https://cdn/middle.png"},
		{ID: 2, Position: domain.BannerSlotTop, IsActive: false, ImageURL: "https://cdn/inactive.png"},
		{ID: 3, Position: domain.BannerSlotTop, IsActive: true, ImageURL: "https://cdn/top.png"},
		{ID: 4, Position: domain.BannerSlotTop, IsActive: true, ImageURL: "https://cdn/second-top.png"},
		{ID: 5, Position: 9, IsActive: true, ImageURL: "https://cdn/out-of-range.png"},
	}

	html, err := r.Render(renderComposition(), banners)
	require.NoError(t, err)

	assert.Contains(t, html, "https://cdn/top.png")
	assert.Contains(t, html, "https://cdn/middle.png")
	assert.NotContains(t, html, "https://cdn/inactive.png")
	assert.NotContains(t, html, "https://cdn/second-top.png", "first active banner per slot wins")
	assert.NotContains(t, html, "https://cdn/out-of-range.png")
}

func TestRenderPickOfMonthBadge(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(renderComposition(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(html, "PICK OF THE MONTH"))

	// badge appears right after the flagged pick's name
	idx := strings.Index(html, "Owen&#39;s Fish Camp")
	badge := strings.Index(html, "PICK OF THE MONTH")
	assert.True(t, idx >= 0 && badge > idx)
}

func TestRenderPickOfMonthFallsBackToFirstPick(t *testing.T) {
	r := newTestRenderer(t)
	comp := Composition{
		Name: "eScoop",
		Restaurants: []RestaurantPick{
			{RestaurantID: 1, Name: "First Pick"},
			{RestaurantID: 2, Name: "Second Pick"},
		},
	}
	html, err := r.Render(comp, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "PICK OF THE MONTH"))
	first := strings.Index(html, "First Pick")
	badge := strings.Index(html, "PICK OF THE MONTH")
	second := strings.Index(html, "Second Pick")
	assert.True(t, first < badge && badge < second, "fallback badge sits on the first pick")
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Oct 3, 2026", FormatDate(&date))
	assert.Equal(t, DateTBD, FormatDate(nil))

	var zero time.Time
	assert.Equal(t, DateTBD, FormatDate(&zero))
}

func TestRenderDateTBDForUndatedEvents(t *testing.T) {
	r := newTestRenderer(t)
	comp := Composition{
		Name: "eScoop",
		Entries: []EntryView{
			{ID: 1, Selected: true, Event: domain.EventSummary{Title: "Someday Show"}},
		},
	}
	html, err := r.Render(comp, nil)
	require.NoError(t, err)
	assert.Contains(t, html, DateTBD)
}
