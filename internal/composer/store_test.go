package composer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/localscoop/escoop-backend/internal/domain"
)

func testEntries(ids ...uint64) []EntryView {
	entries := make([]EntryView, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, EntryView{ID: id, EventID: id * 10})
	}
	return entries
}

func testRestaurant(id uint64, name string) *domain.Restaurant {
	return &domain.Restaurant{ID: id, Name: name, City: "Sarasota", State: "FL"}
}

func pickIDs(c Composition) []uint64 {
	ids := make([]uint64, 0, len(c.Restaurants))
	for _, p := range c.Restaurants {
		ids = append(ids, p.RestaurantID)
	}
	return ids
}

func TestInitForNewsletterIsIdempotent(t *testing.T) {
	s := NewStore()

	assert.True(t, s.InitForNewsletter(7), "first init resets")
	s.AddRestaurant(testRestaurant(1, "Indigenous"))

	assert.False(t, s.InitForNewsletter(7), "re-init of the active issue keeps state")
	assert.Len(t, s.Snapshot().Restaurants, 1)

	assert.True(t, s.InitForNewsletter(8), "switching issues resets")
	assert.Empty(t, s.Snapshot().Restaurants)
	assert.Equal(t, uint64(8), s.ActiveID())
}

func TestSetEntriesDefaultsToSelected(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.SetEntries(testEntries(1, 2, 3), domain.PageInfo{HasMore: true})

	snap := s.Snapshot()
	assert.Len(t, snap.SelectedEntries(), 3)
	assert.True(t, snap.EntriesPage.HasMore)
}

func TestToggleEntry(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.SetEntries(testEntries(1, 2), domain.PageInfo{})

	s.ToggleEntry(2)
	snap := s.Snapshot()
	assert.Len(t, snap.SelectedEntries(), 1)
	assert.Equal(t, uint64(1), snap.SelectedEntries()[0].ID)

	s.ToggleEntry(2)
	assert.Len(t, s.Snapshot().SelectedEntries(), 2)

	// unknown id is a no-op, not an error
	s.ToggleEntry(999)
	assert.Len(t, s.Snapshot().SelectedEntries(), 2)
}

func TestAppendEntriesSkipsDuplicatesAndKeepsSelection(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.SetEntries(testEntries(1, 2), domain.PageInfo{HasMore: true})
	s.ToggleEntry(1)

	s.AppendEntries(testEntries(2, 3, 4), domain.PageInfo{HasMore: false})

	snap := s.Snapshot()
	assert.Len(t, snap.Entries, 4)
	assert.False(t, snap.Entries[0].Selected, "earlier deselection survives a later page")
	assert.True(t, snap.Entries[2].Selected, "new entries arrive selected")
	assert.False(t, snap.EntriesPage.HasMore)
}

func TestAddRestaurantDeduplicates(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)

	s.AddRestaurant(testRestaurant(1, "Indigenous"))
	s.AddRestaurant(testRestaurant(2, "Owen's Fish Camp"))
	s.AddRestaurant(testRestaurant(1, "Indigenous"))

	snap := s.Snapshot()
	assert.Equal(t, []uint64{1, 2}, pickIDs(snap))
	assert.Equal(t, 0, snap.Restaurants[0].Position)
	assert.Equal(t, 1, snap.Restaurants[1].Position)
}

func TestRemoveRestaurantRenumbersPositions(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.AddRestaurant(testRestaurant(1, "a"))
	s.AddRestaurant(testRestaurant(2, "b"))
	s.AddRestaurant(testRestaurant(3, "c"))

	s.RemoveRestaurant(2)

	snap := s.Snapshot()
	assert.Equal(t, []uint64{1, 3}, pickIDs(snap))
	for i, p := range snap.Restaurants {
		assert.Equal(t, i, p.Position)
	}

	// unknown id is a no-op
	s.RemoveRestaurant(999)
	assert.Len(t, s.Snapshot().Restaurants, 2)
}

func TestMoveRestaurantClampsAndRenumbers(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.AddRestaurant(testRestaurant(1, "a"))
	s.AddRestaurant(testRestaurant(2, "b"))
	s.AddRestaurant(testRestaurant(3, "c"))

	s.MoveRestaurant(3, 0)
	assert.Equal(t, []uint64{3, 1, 2}, pickIDs(s.Snapshot()))

	s.MoveRestaurant(3, 99)
	assert.Equal(t, []uint64{1, 2, 3}, pickIDs(s.Snapshot()))

	s.MoveRestaurant(1, -5)
	assert.Equal(t, []uint64{1, 2, 3}, pickIDs(s.Snapshot()))

	snap := s.Snapshot()
	for i, p := range snap.Restaurants {
		assert.Equal(t, i, p.Position)
	}
}

func TestSetPickOfMonthIsExclusive(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.AddRestaurant(testRestaurant(1, "a"))
	s.AddRestaurant(testRestaurant(2, "b"))

	s.SetPickOfMonth(1)
	snap := s.Snapshot()
	assert.True(t, snap.Restaurants[0].PickOfMonth)
	assert.False(t, snap.Restaurants[1].PickOfMonth)

	s.SetPickOfMonth(2)
	snap = s.Snapshot()
	assert.False(t, snap.Restaurants[0].PickOfMonth)
	assert.True(t, snap.Restaurants[1].PickOfMonth)

	// unknown id leaves the current designation alone
	s.SetPickOfMonth(999)
	snap = s.Snapshot()
	assert.True(t, snap.Restaurants[1].PickOfMonth)
}

func TestPickOfMonthFallsBackToFirstPick(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)

	_, ok := s.Snapshot().PickOfMonth()
	assert.False(t, ok)

	s.AddRestaurant(testRestaurant(5, "a"))
	s.AddRestaurant(testRestaurant(6, "b"))

	pick, ok := s.Snapshot().PickOfMonth()
	assert.True(t, ok)
	assert.Equal(t, uint64(5), pick.RestaurantID)
}

func TestToggleFeaturedKeepsEventInList(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.AddFeaturedEvent(&domain.Event{ID: 4, Title: "Gallery Walk"})

	s.ToggleFeatured(4)
	snap := s.Snapshot()
	assert.Len(t, snap.FeaturedEvents, 1)
	assert.False(t, snap.FeaturedEvents[0].IsFeatured)

	s.ToggleFeatured(4)
	assert.True(t, s.Snapshot().FeaturedEvents[0].IsFeatured)
}

func TestUpdateSettingsRenamesIssue(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)

	s.UpdateSettings(domain.NewsletterSettings{SubjectLine: "October events", DisplayName: "eScoop October"})

	snap := s.Snapshot()
	assert.Equal(t, "October events", snap.Settings.SubjectLine)
	assert.Equal(t, "eScoop October", snap.Name)
}

func TestSnapshotIsDetachedFromStore(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.AddRestaurant(testRestaurant(1, "a"))

	snap := s.Snapshot()
	snap.Restaurants[0].Name = "mutated"
	snap.Restaurants = append(snap.Restaurants, RestaurantPick{RestaurantID: 99})

	fresh := s.Snapshot()
	assert.Equal(t, "a", fresh.Restaurants[0].Name)
	assert.Len(t, fresh.Restaurants, 1)
}

func TestObserversReceiveOneDebouncedSnapshot(t *testing.T) {
	s := NewStore()
	s.notifyAfter = 10 * time.Millisecond

	var mu sync.Mutex
	var snapshots []Composition
	unsubscribe := s.Subscribe(func(c Composition) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, c)
	})
	defer unsubscribe()

	s.InitForNewsletter(1)
	s.AddRestaurant(testRestaurant(1, "a"))
	s.AddRestaurant(testRestaurant(2, "b"))
	s.SetPickOfMonth(2)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snapshots) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, snapshots[0].Restaurants, 2, "burst coalesced into the final state")
	assert.True(t, snapshots[0].Restaurants[1].PickOfMonth)
}

func TestCloseDeactivatesStore(t *testing.T) {
	s := NewStore()
	s.InitForNewsletter(1)
	s.AddRestaurant(testRestaurant(1, "a"))

	s.Close()
	assert.Equal(t, uint64(0), s.ActiveID())

	// mutations against a closed store are no-ops
	s.AddRestaurant(testRestaurant(2, "b"))
	assert.Empty(t, s.Snapshot().Restaurants)
}
