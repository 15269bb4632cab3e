package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/composer"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/repository"
	"github.com/localscoop/escoop-backend/pkg/logger"
)

// NewsletterService drives the eScoop builder: opening issues, mutating
// the live composition, previewing the rendered HTML, and saving back to
// the database
type NewsletterService interface {
	Open(id uint64) (*composer.Composition, error)
	Get(id uint64) (*composer.Composition, error)
	Close(id uint64)

	LoadMoreEntries(id uint64) (*composer.Composition, error)
	ToggleEntry(id, entryID uint64) (*composer.Composition, error)

	AddRestaurant(id, restaurantID uint64) (*composer.Composition, error)
	RemoveRestaurant(id, restaurantID uint64) (*composer.Composition, error)
	MoveRestaurant(id, restaurantID uint64, to int) (*composer.Composition, error)
	SetPickOfMonth(id, restaurantID uint64) (*composer.Composition, error)

	AddFeaturedEvent(id, eventID uint64) (*composer.Composition, error)
	RemoveFeaturedEvent(id, eventID uint64) (*composer.Composition, error)
	ToggleFeatured(id, eventID uint64) (*composer.Composition, error)

	UpdateSettings(id uint64, settings domain.NewsletterSettings) (*composer.Composition, error)
	SetCampaignState(id uint64, state domain.CampaignState) error

	Preview(ctx context.Context, id uint64) (string, error)
	Save(ctx context.Context, id uint64) error
}

type newsletterService struct {
	sessions       *composer.Sessions
	renderer       *composer.Renderer
	repo           repository.NewsletterRepository
	restaurantRepo repository.RestaurantRepository
	eventRepo      repository.EventRepository
	banners        BannerService
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(
	sessions *composer.Sessions,
	renderer *composer.Renderer,
	repo repository.NewsletterRepository,
	restaurantRepo repository.RestaurantRepository,
	eventRepo repository.EventRepository,
	banners BannerService,
) NewsletterService {
	return &newsletterService{
		sessions:       sessions,
		renderer:       renderer,
		repo:           repo,
		restaurantRepo: restaurantRepo,
		eventRepo:      eventRepo,
		banners:        banners,
	}
}

// Open opens the builder for an issue, loading the saved record and the
// first page of entries on first open. Reopening an already open issue
// keeps its in-progress state.
func (s *newsletterService) Open(id uint64) (*composer.Composition, error) {
	session, err := s.sessions.Open(id)
	if err != nil {
		return nil, err
	}
	snapshot := session.Store.Snapshot()
	return &snapshot, nil
}

// Get returns the current composition of an open issue
func (s *newsletterService) Get(id uint64) (*composer.Composition, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	snapshot := session.Store.Snapshot()
	return &snapshot, nil
}

// Close tears down an open builder session without saving
func (s *newsletterService) Close(id uint64) {
	s.sessions.Close(id)
}

// LoadMoreEntries appends the next page of auto-linked entries
func (s *newsletterService) LoadMoreEntries(id uint64) (*composer.Composition, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := session.Aggregator.LoadMore(id); err != nil {
		return nil, err
	}
	snapshot := session.Store.Snapshot()
	return &snapshot, nil
}

// ToggleEntry flips an entry's inclusion in the issue
func (s *newsletterService) ToggleEntry(id, entryID uint64) (*composer.Composition, error) {
	return s.mutate(id, func(store *composer.Store) {
		store.ToggleEntry(entryID)
	})
}

// AddRestaurant curates a restaurant into the issue
func (s *newsletterService) AddRestaurant(id, restaurantID uint64) (*composer.Composition, error) {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.mutate(id, func(store *composer.Store) {
		store.AddRestaurant(restaurant)
	})
}

// RemoveRestaurant removes a curated restaurant
func (s *newsletterService) RemoveRestaurant(id, restaurantID uint64) (*composer.Composition, error) {
	return s.mutate(id, func(store *composer.Store) {
		store.RemoveRestaurant(restaurantID)
	})
}

// MoveRestaurant reorders a curated restaurant
func (s *newsletterService) MoveRestaurant(id, restaurantID uint64, to int) (*composer.Composition, error) {
	return s.mutate(id, func(store *composer.Store) {
		store.MoveRestaurant(restaurantID, to)
	})
}

// SetPickOfMonth flags one curated restaurant as pick of the month
func (s *newsletterService) SetPickOfMonth(id, restaurantID uint64) (*composer.Composition, error) {
	return s.mutate(id, func(store *composer.Store) {
		store.SetPickOfMonth(restaurantID)
	})
}

// AddFeaturedEvent curates an event into the featured section
func (s *newsletterService) AddFeaturedEvent(id, eventID uint64) (*composer.Composition, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEventNotFound
		}
		return nil, err
	}
	return s.mutate(id, func(store *composer.Store) {
		store.AddFeaturedEvent(event)
	})
}

// RemoveFeaturedEvent removes a curated event
func (s *newsletterService) RemoveFeaturedEvent(id, eventID uint64) (*composer.Composition, error) {
	return s.mutate(id, func(store *composer.Store) {
		store.RemoveFeaturedEvent(eventID)
	})
}

// ToggleFeatured flips the featured flag of a curated event
func (s *newsletterService) ToggleFeatured(id, eventID uint64) (*composer.Composition, error) {
	return s.mutate(id, func(store *composer.Store) {
		store.ToggleFeatured(eventID)
	})
}

// UpdateSettings replaces the send configuration of the open issue
func (s *newsletterService) UpdateSettings(id uint64, settings domain.NewsletterSettings) (*composer.Composition, error) {
	if utf8.RuneCountInString(settings.SubjectLine) > domain.MaxSubjectLength {
		return nil, common.ErrSubjectTooLong
	}
	return s.mutate(id, func(store *composer.Store) {
		store.UpdateSettings(settings)
	})
}

// SetCampaignState records the campaign lifecycle state on the open issue
func (s *newsletterService) SetCampaignState(id uint64, state domain.CampaignState) error {
	session, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	session.Store.SetCampaignState(state)
	return nil
}

// Preview renders the issue HTML from the live composition and the
// currently active banners
func (s *newsletterService) Preview(ctx context.Context, id uint64) (string, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return "", err
	}
	banners, err := s.banners.GetActiveBanners(ctx)
	if err != nil {
		logger.Error("failed to load banners for preview: %v", err)
		banners = nil
	}
	return s.renderer.Render(session.Store.Snapshot(), banners)
}

// Save persists the live composition: scalar settings on the newsletter
// row plus the curated restaurant and featured-event collections. Entry
// selection is a display state and is not saved.
func (s *newsletterService) Save(ctx context.Context, id uint64) error {
	session, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	snapshot := session.Store.Snapshot()

	record, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNewsletterNotFound
		}
		return err
	}

	record.Name = snapshot.Name
	record.Title = snapshot.Title
	record.SendDate = snapshot.SendDate
	record.SubjectLine = snapshot.Settings.SubjectLine
	record.TemplateName = snapshot.Settings.TemplateName
	record.ListIDs = snapshot.Settings.ListIDs
	record.SegmentIDs = snapshot.Settings.SegmentIDs
	record.ScheduledAt = snapshot.Settings.ScheduledAt
	record.TestRecipients = snapshot.Settings.TestRecipients
	record.CampaignID = snapshot.Campaign.CampaignID

	if err := s.repo.Save(record); err != nil {
		return err
	}

	picks := make([]domain.NewsletterRestaurant, len(snapshot.Restaurants))
	for i, p := range snapshot.Restaurants {
		picks[i] = domain.NewsletterRestaurant{
			RestaurantID: p.RestaurantID,
			Position:     p.Position,
			PickOfMonth:  p.PickOfMonth,
		}
	}
	if err := s.repo.ReplaceRestaurants(id, picks); err != nil {
		return err
	}

	featured := make([]domain.NewsletterFeaturedEvent, len(snapshot.FeaturedEvents))
	for i, fe := range snapshot.FeaturedEvents {
		featured[i] = domain.NewsletterFeaturedEvent{
			EventID:    fe.EventID,
			Position:   fe.Position,
			IsFeatured: fe.IsFeatured,
		}
	}
	return s.repo.ReplaceFeaturedEvents(id, featured)
}

func (s *newsletterService) mutate(id uint64, fn func(*composer.Store)) (*composer.Composition, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	fn(session.Store)
	snapshot := session.Store.Snapshot()
	return &snapshot, nil
}
