package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/repository"
	"github.com/localscoop/escoop-backend/pkg/cache"
	"github.com/localscoop/escoop-backend/pkg/logger"
)

// BannerService defines the business logic for banners
type BannerService interface {
	GetAll() ([]domain.BannerResponse, error)
	GetActive(ctx context.Context) ([]domain.BannerResponse, error)
	GetActiveBanners(ctx context.Context) ([]domain.Banner, error)
	GetByID(id uint64) (*domain.BannerResponse, error)
	Create(req *domain.CreateBannerRequest) (*domain.BannerResponse, error)
	Update(id uint64, req *domain.UpdateBannerRequest) (*domain.BannerResponse, error)
	Delete(id uint64) error
}

type bannerService struct {
	repo  repository.BannerRepository
	cache cache.Service
}

// NewBannerService creates a new BannerService
func NewBannerService(repo repository.BannerRepository, cacheService cache.Service) BannerService {
	return &bannerService{repo: repo, cache: cacheService}
}

// GetAll retrieves all banners for the admin listing
func (s *bannerService) GetAll() ([]domain.BannerResponse, error) {
	banners, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	responses := make([]domain.BannerResponse, len(banners))
	for i, banner := range banners {
		responses[i] = banner.ToResponse()
	}
	return responses, nil
}

// GetActive retrieves active banners, cached
func (s *bannerService) GetActive(ctx context.Context) ([]domain.BannerResponse, error) {
	if s.cache.IsAvailable() {
		if data, err := s.cache.GetActiveBanners(ctx); err == nil {
			var responses []domain.BannerResponse
			if err := json.Unmarshal(data, &responses); err == nil {
				return responses, nil
			}
		}
	}

	banners, err := s.repo.GetActive()
	if err != nil {
		return nil, err
	}
	responses := make([]domain.BannerResponse, len(banners))
	for i, banner := range banners {
		responses[i] = banner.ToResponse()
	}

	if err := s.cache.SetActiveBanners(ctx, responses); err != nil {
		logger.Error("failed to cache active banners: %v", err)
	}
	return responses, nil
}

// GetActiveBanners retrieves active banner models for the renderer
func (s *bannerService) GetActiveBanners(ctx context.Context) ([]domain.Banner, error) {
	banners, err := s.repo.GetActive()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Banner, len(banners))
	for i, b := range banners {
		out[i] = *b
	}
	return out, nil
}

// GetByID retrieves a banner by ID
func (s *bannerService) GetByID(id uint64) (*domain.BannerResponse, error) {
	banner, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBannerNotFound
		}
		return nil, err
	}
	resp := banner.ToResponse()
	return &resp, nil
}

// Create creates a new banner
func (s *bannerService) Create(req *domain.CreateBannerRequest) (*domain.BannerResponse, error) {
	banner := &domain.Banner{
		DisplayName: req.DisplayName,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		Position:    req.Position,
		IsActive:    req.IsActive,
	}
	if err := s.repo.Create(banner); err != nil {
		return nil, err
	}
	s.invalidate()
	resp := banner.ToResponse()
	return &resp, nil
}

// Update updates a banner. Only the provided fields change.
func (s *bannerService) Update(id uint64, req *domain.UpdateBannerRequest) (*domain.BannerResponse, error) {
	banner, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrBannerNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		banner.DisplayName = *req.DisplayName
	}
	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		banner.LinkURL = *req.LinkURL
	}
	if req.Position != nil {
		if *req.Position < domain.BannerSlotTop || *req.Position > domain.BannerSlotBottom {
			return nil, common.ErrInvalidInput
		}
		banner.Position = *req.Position
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.repo.Update(banner); err != nil {
		return nil, err
	}
	s.invalidate()
	resp := banner.ToResponse()
	return &resp, nil
}

// Delete deletes a banner
func (s *bannerService) Delete(id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *bannerService) invalidate() {
	if err := s.cache.InvalidateBanners(context.Background()); err != nil {
		logger.Error("failed to invalidate banner cache: %v", err)
	}
}
