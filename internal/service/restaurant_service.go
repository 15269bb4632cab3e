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

// RestaurantListResult is one page of directory restaurants with its
// pagination info
type RestaurantListResult struct {
	Restaurants []domain.RestaurantResponse `json:"restaurants"`
	Page        domain.PageInfo             `json:"page"`
}

// RestaurantService defines the business logic for directory restaurants
type RestaurantService interface {
	List(ctx context.Context, criteria domain.Criteria, limit int, cursor string) (*RestaurantListResult, error)
	GetByID(id uint64) (*domain.RestaurantResponse, error)
	GetBySlug(slug string) (*domain.RestaurantResponse, error)
	Search(name string, limit int) ([]domain.RestaurantResponse, error)
	Create(restaurant *domain.Restaurant) (*domain.RestaurantResponse, error)
	Update(restaurant *domain.Restaurant) (*domain.RestaurantResponse, error)
	Delete(id uint64) error
}

type restaurantService struct {
	repo  repository.RestaurantRepository
	cache cache.Service
}

// NewRestaurantService creates a new RestaurantService
func NewRestaurantService(repo repository.RestaurantRepository, cacheService cache.Service) RestaurantService {
	return &restaurantService{repo: repo, cache: cacheService}
}

// List returns one page of active restaurants. First pages are served
// from cache when possible.
func (s *restaurantService) List(ctx context.Context, criteria domain.Criteria, limit int, cursor string) (*RestaurantListResult, error) {
	cacheable := cursor == "" && s.cache.IsAvailable()
	cacheKey := fmt.Sprintf("%s:%d", criteria.CacheKey(), limit)

	if cacheable {
		if data, err := s.cache.GetRestaurantList(ctx, cacheKey); err == nil {
			var result RestaurantListResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	restaurants, page, err := s.repo.List(criteria, limit, cursor)
	if err != nil {
		return nil, err
	}

	result := &RestaurantListResult{
		Restaurants: make([]domain.RestaurantResponse, len(restaurants)),
		Page:        page,
	}
	for i, r := range restaurants {
		result.Restaurants[i] = r.ToResponse()
	}

	if cacheable {
		if err := s.cache.SetRestaurantList(ctx, cacheKey, result); err != nil {
			logger.Error("failed to cache restaurant list: %v", err)
		}
	}
	return result, nil
}

// GetByID retrieves a restaurant by ID
func (s *restaurantService) GetByID(id uint64) (*domain.RestaurantResponse, error) {
	restaurant, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRestaurantNotFound
		}
		return nil, err
	}
	resp := restaurant.ToResponse()
	return &resp, nil
}

// GetBySlug retrieves an active restaurant by slug
func (s *restaurantService) GetBySlug(slug string) (*domain.RestaurantResponse, error) {
	restaurant, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRestaurantNotFound
		}
		return nil, err
	}
	resp := restaurant.ToResponse()
	return &resp, nil
}

// Search finds restaurants by name prefix for the builder's pick flow
func (s *restaurantService) Search(name string, limit int) ([]domain.RestaurantResponse, error) {
	restaurants, err := s.repo.Search(name, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		responses[i] = r.ToResponse()
	}
	return responses, nil
}

// Create creates a restaurant and invalidates cached listings
func (s *restaurantService) Create(restaurant *domain.Restaurant) (*domain.RestaurantResponse, error) {
	if err := s.repo.Create(restaurant); err != nil {
		return nil, err
	}
	s.invalidate()
	resp := restaurant.ToResponse()
	return &resp, nil
}

// Update updates a restaurant and invalidates cached listings
func (s *restaurantService) Update(restaurant *domain.Restaurant) (*domain.RestaurantResponse, error) {
	if err := s.repo.Update(restaurant); err != nil {
		return nil, err
	}
	s.invalidate()
	resp := restaurant.ToResponse()
	return &resp, nil
}

// Delete deletes a restaurant and invalidates cached listings
func (s *restaurantService) Delete(id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *restaurantService) invalidate() {
	if err := s.cache.InvalidateRestaurantLists(context.Background()); err != nil {
		logger.Error("failed to invalidate restaurant list cache: %v", err)
	}
}
