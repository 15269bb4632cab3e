package repository

import (
	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// BannerRepository defines the interface for banner data access
type BannerRepository interface {
	GetAll() ([]*domain.Banner, error)
	GetActive() ([]*domain.Banner, error)
	FindByID(id uint64) (*domain.Banner, error)
	Create(banner *domain.Banner) error
	Update(banner *domain.Banner) error
	Delete(id uint64) error
}

// bannerRepository implements BannerRepository with GORM
type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository creates a new BannerRepository
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

// GetAll retrieves all banners, active or not, ordered by slot position
func (r *bannerRepository) GetAll() ([]*domain.Banner, error) {
	var banners []*domain.Banner
	err := r.db.
		Order("position ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

// GetActive retrieves active banners ordered by slot position
func (r *bannerRepository) GetActive() ([]*domain.Banner, error) {
	var banners []*domain.Banner
	err := r.db.
		Where("is_active = ?", true).
		Order("position ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

// FindByID finds a banner by ID
func (r *bannerRepository) FindByID(id uint64) (*domain.Banner, error) {
	var banner domain.Banner
	err := r.db.Where("id = ?", id).First(&banner).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// Create creates a new banner
func (r *bannerRepository) Create(banner *domain.Banner) error {
	return r.db.Create(banner).Error
}

// Update updates a banner
func (r *bannerRepository) Update(banner *domain.Banner) error {
	return r.db.Save(banner).Error
}

// Delete deletes a banner by ID
func (r *bannerRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Banner{}, id).Error
}
