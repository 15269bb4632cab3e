package composer

import (
	"sync"
	"time"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// NotifyInterval is the quiet period before observers receive a snapshot.
// Bursts of mutations coalesce into a single notification.
const NotifyInterval = 100 * time.Millisecond

// Observer receives a snapshot after the composition changed
type Observer func(Composition)

// Store holds the builder state for one newsletter at a time. Every
// mutation is synchronous and total: mutations addressed at a missing
// target are no-ops, never errors. Observers are notified asynchronously
// with a debounce so mutation bursts produce one snapshot.
type Store struct {
	mu sync.Mutex

	active      bool
	composition Composition

	notifyAfter time.Duration
	notifyTimer *time.Timer
	observers   map[int]Observer
	nextObsID   int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		notifyAfter: NotifyInterval,
		observers:   make(map[int]Observer),
	}
}

// InitForNewsletter prepares the store for an issue. Initializing for the
// newsletter that is already active keeps all current state; switching to
// a different newsletter resets everything first. Returns true when a
// reset happened, which tells the caller a backfill is needed.
func (s *Store) InitForNewsletter(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active && s.composition.NewsletterID == id {
		return false
	}
	s.composition = Composition{
		NewsletterID: id,
		Campaign:     domain.NewCampaignState(),
	}
	s.active = true
	s.scheduleNotifyLocked()
	return true
}

// ActiveID returns the id of the newsletter the store is holding, or 0
func (s *Store) ActiveID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return 0
	}
	return s.composition.NewsletterID
}

// Snapshot returns a copy of the current composition
func (s *Store) Snapshot() Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composition.clone()
}

// Subscribe registers an observer and returns an unsubscribe func
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// scheduleNotifyLocked arms the debounced observer notification.
// Caller holds s.mu.
func (s *Store) scheduleNotifyLocked() {
	if len(s.observers) == 0 {
		return
	}
	if s.notifyTimer != nil {
		s.notifyTimer.Stop()
	}
	s.notifyTimer = time.AfterFunc(s.notifyAfter, s.notify)
}

func (s *Store) notify() {
	s.mu.Lock()
	snapshot := s.composition.clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()
	for _, obs := range observers {
		obs(snapshot)
	}
}

// Backfill loads the persisted record into the composition. Entries are
// managed separately by the aggregator. Ignored when the record belongs to
// a different newsletter than the active one.
func (s *Store) Backfill(n *domain.Newsletter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || s.composition.NewsletterID != n.ID {
		return
	}

	c := &s.composition
	c.Name = n.Name
	c.Title = n.Title
	c.SendDate = n.SendDate
	c.Market = n.Market
	c.Locations = copyStrings(n.Locations)

	c.Restaurants = make([]RestaurantPick, 0, len(n.Restaurants))
	for _, nr := range n.Restaurants {
		c.Restaurants = append(c.Restaurants, RestaurantPick{
			RestaurantID: nr.RestaurantID,
			Name:         nr.Restaurant.Name,
			ImageURL:     nr.Restaurant.ImageURL,
			Description:  nr.Restaurant.Description,
			City:         nr.Restaurant.City,
			State:        nr.Restaurant.State,
			Position:     nr.Position,
			PickOfMonth:  nr.PickOfMonth,
		})
	}

	c.FeaturedEvents = make([]FeaturedEvent, 0, len(n.FeaturedEvents))
	for _, fe := range n.FeaturedEvents {
		c.FeaturedEvents = append(c.FeaturedEvents, FeaturedEvent{
			EventID:    fe.EventID,
			Event:      fe.Event.ToSummary(),
			Position:   fe.Position,
			IsFeatured: fe.IsFeatured,
		})
	}

	c.Editorials = append([]domain.EditorialBlock(nil), n.Editorials...)

	c.Settings = domain.NewsletterSettings{
		SubjectLine:    n.SubjectLine,
		DisplayName:    n.Name,
		TemplateName:   n.TemplateName,
		ListIDs:        copyStrings(n.ListIDs),
		SegmentIDs:     copyStrings(n.SegmentIDs),
		ScheduledAt:    n.ScheduledAt,
		TestRecipients: copyStrings(n.TestRecipients),
	}

	c.Campaign = domain.NewCampaignState()
	if n.CampaignID != "" {
		c.Campaign = domain.CampaignState{
			CampaignID: n.CampaignID,
			Status:     domain.CampaignCreated,
		}
	}
	s.scheduleNotifyLocked()
}

// SetEntries replaces the entry list, typically with the first loaded
// page. Every entry starts selected.
func (s *Store) SetEntries(entries []EntryView, page domain.PageInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	for i := range entries {
		entries[i].Selected = true
	}
	s.composition.Entries = entries
	s.composition.EntriesPage = page
	s.scheduleNotifyLocked()
}

// AppendEntries adds a further page of entries, default-selected.
// Entries already present are skipped.
func (s *Store) AppendEntries(entries []EntryView, page domain.PageInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	seen := make(map[uint64]bool, len(s.composition.Entries))
	for _, e := range s.composition.Entries {
		seen[e.ID] = true
	}
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		e.Selected = true
		s.composition.Entries = append(s.composition.Entries, e)
	}
	s.composition.EntriesPage = page
	s.scheduleNotifyLocked()
}

// ToggleEntry flips the selection of one entry. Unknown ids are no-ops.
func (s *Store) ToggleEntry(entryID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.composition.Entries {
		if s.composition.Entries[i].ID == entryID {
			s.composition.Entries[i].Selected = !s.composition.Entries[i].Selected
			s.scheduleNotifyLocked()
			return
		}
	}
}

// AddRestaurant appends a curated pick. Adding a restaurant that is
// already picked is a no-op.
func (s *Store) AddRestaurant(r *domain.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	for _, p := range s.composition.Restaurants {
		if p.RestaurantID == r.ID {
			return
		}
	}
	s.composition.Restaurants = append(s.composition.Restaurants, RestaurantPick{
		RestaurantID: r.ID,
		Name:         r.Name,
		ImageURL:     r.ImageURL,
		Description:  r.Description,
		City:         r.City,
		State:        r.State,
		Position:     len(s.composition.Restaurants),
		AddedAt:      time.Now(),
	})
	s.scheduleNotifyLocked()
}

// RemoveRestaurant removes a pick and renumbers the remaining positions.
// Unknown ids are no-ops.
func (s *Store) RemoveRestaurant(restaurantID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	picks := s.composition.Restaurants
	for i, p := range picks {
		if p.RestaurantID == restaurantID {
			picks = append(picks[:i], picks[i+1:]...)
			for j := range picks {
				picks[j].Position = j
			}
			s.composition.Restaurants = picks
			s.scheduleNotifyLocked()
			return
		}
	}
}

// MoveRestaurant moves a pick to a new position, shifting the others.
// Out-of-range targets clamp to the ends.
func (s *Store) MoveRestaurant(restaurantID uint64, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	picks := s.composition.Restaurants
	from := -1
	for i, p := range picks {
		if p.RestaurantID == restaurantID {
			from = i
			break
		}
	}
	if from == -1 {
		return
	}
	if to < 0 {
		to = 0
	}
	if to >= len(picks) {
		to = len(picks) - 1
	}
	if to == from {
		return
	}
	moved := picks[from]
	picks = append(picks[:from], picks[from+1:]...)
	picks = append(picks[:to], append([]RestaurantPick{moved}, picks[to:]...)...)
	for j := range picks {
		picks[j].Position = j
	}
	s.composition.Restaurants = picks
	s.scheduleNotifyLocked()
}

// SetPickOfMonth flags one pick as pick of the month, clearing the flag
// everywhere else. At most one pick carries the flag at any time.
// Unknown ids are no-ops.
func (s *Store) SetPickOfMonth(restaurantID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, p := range s.composition.Restaurants {
		if p.RestaurantID == restaurantID {
			found = true
			break
		}
	}
	if !found {
		return
	}
	for i := range s.composition.Restaurants {
		s.composition.Restaurants[i].PickOfMonth =
			s.composition.Restaurants[i].RestaurantID == restaurantID
	}
	s.scheduleNotifyLocked()
}

// AddFeaturedEvent appends a curated event. Duplicates are no-ops.
func (s *Store) AddFeaturedEvent(e *domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	for _, fe := range s.composition.FeaturedEvents {
		if fe.EventID == e.ID {
			return
		}
	}
	s.composition.FeaturedEvents = append(s.composition.FeaturedEvents, FeaturedEvent{
		EventID:    e.ID,
		Event:      e.ToSummary(),
		Position:   len(s.composition.FeaturedEvents),
		IsFeatured: true,
	})
	s.scheduleNotifyLocked()
}

// RemoveFeaturedEvent removes a curated event. Unknown ids are no-ops.
func (s *Store) RemoveFeaturedEvent(eventID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	featured := s.composition.FeaturedEvents
	for i, fe := range featured {
		if fe.EventID == eventID {
			featured = append(featured[:i], featured[i+1:]...)
			for j := range featured {
				featured[j].Position = j
			}
			s.composition.FeaturedEvents = featured
			s.scheduleNotifyLocked()
			return
		}
	}
}

// ToggleFeatured flips the featured flag of a curated event without
// removing it from the list
func (s *Store) ToggleFeatured(eventID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.composition.FeaturedEvents {
		if s.composition.FeaturedEvents[i].EventID == eventID {
			s.composition.FeaturedEvents[i].IsFeatured = !s.composition.FeaturedEvents[i].IsFeatured
			s.scheduleNotifyLocked()
			return
		}
	}
}

// UpdateSettings replaces the send configuration
func (s *Store) UpdateSettings(settings domain.NewsletterSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.composition.Settings = settings
	if settings.DisplayName != "" {
		s.composition.Name = settings.DisplayName
	}
	s.scheduleNotifyLocked()
}

// SetCampaignState replaces the campaign lifecycle state
func (s *Store) SetCampaignState(state domain.CampaignState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.composition.Campaign = state
	s.scheduleNotifyLocked()
}

// Close drops the active composition and stops pending notifications
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notifyTimer != nil {
		s.notifyTimer.Stop()
	}
	s.active = false
	s.composition = Composition{}
}
