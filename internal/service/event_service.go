package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/repository"
	"github.com/localscoop/escoop-backend/pkg/cache"
	"github.com/localscoop/escoop-backend/pkg/logger"
)

// EventListResult is one page of directory events with its pagination info
type EventListResult struct {
	Events []domain.EventResponse `json:"events"`
	Page   domain.PageInfo        `json:"page"`
}

// EventService defines the business logic for directory events
type EventService interface {
	List(ctx context.Context, criteria domain.Criteria, limit int, cursor string) (*EventListResult, error)
	GetByID(id uint64) (*domain.EventResponse, error)
	GetBySlug(slug string) (*domain.EventResponse, error)
	Create(event *domain.Event) (*domain.EventResponse, error)
	Update(event *domain.Event) (*domain.EventResponse, error)
	Delete(id uint64) error
}

type eventService struct {
	repo  repository.EventRepository
	cache cache.Service
}

// NewEventService creates a new EventService
func NewEventService(repo repository.EventRepository, cacheService cache.Service) EventService {
	return &eventService{repo: repo, cache: cacheService}
}

// List returns one page of published events. First pages are served from
// cache when possible; cursored pages always hit the database.
func (s *eventService) List(ctx context.Context, criteria domain.Criteria, limit int, cursor string) (*EventListResult, error) {
	cacheable := cursor == "" && s.cache.IsAvailable()
	cacheKey := fmt.Sprintf("%s:%d", criteria.CacheKey(), limit)

	if cacheable {
		if data, err := s.cache.GetEventList(ctx, cacheKey); err == nil {
			var result EventListResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	events, page, err := s.repo.List(criteria, limit, cursor)
	if err != nil {
		return nil, err
	}

	result := &EventListResult{
		Events: make([]domain.EventResponse, len(events)),
		Page:   page,
	}
	for i, e := range events {
		result.Events[i] = e.ToResponse()
	}

	if cacheable {
		if err := s.cache.SetEventList(ctx, cacheKey, result); err != nil {
			logger.Error("failed to cache event list: %v", err)
		}
	}
	return result, nil
}

// GetByID retrieves an event by ID
func (s *eventService) GetByID(id uint64) (*domain.EventResponse, error) {
	event, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEventNotFound
		}
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

// GetBySlug retrieves a published event by slug
func (s *eventService) GetBySlug(slug string) (*domain.EventResponse, error) {
	event, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrEventNotFound
		}
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

// Create creates an event and invalidates cached listings
func (s *eventService) Create(event *domain.Event) (*domain.EventResponse, error) {
	if err := s.repo.Create(event); err != nil {
		return nil, err
	}
	s.invalidate()
	resp := event.ToResponse()
	return &resp, nil
}

// Update updates an event and invalidates cached listings
func (s *eventService) Update(event *domain.Event) (*domain.EventResponse, error) {
	if err := s.repo.Update(event); err != nil {
		return nil, err
	}
	s.invalidate()
	resp := event.ToResponse()
	return &resp, nil
}

// Delete deletes an event and invalidates cached listings
func (s *eventService) Delete(id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *eventService) invalidate() {
	if err := s.cache.InvalidateEventLists(context.Background()); err != nil {
		logger.Error("failed to invalidate event list cache: %v", err)
	}
}
