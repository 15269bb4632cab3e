package repository

import (
	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// ArtsGroupRepository defines the interface for arts-group data access
type ArtsGroupRepository interface {
	List(page, limit int) ([]*domain.ArtsGroup, int64, error)
	FindByID(id uint64) (*domain.ArtsGroup, error)
	FindBySlug(slug string) (*domain.ArtsGroup, error)
	Create(group *domain.ArtsGroup) error
	Update(group *domain.ArtsGroup) error
	Delete(id uint64) error
}

// artsGroupRepository implements ArtsGroupRepository with GORM
type artsGroupRepository struct {
	db *gorm.DB
}

// NewArtsGroupRepository creates a new ArtsGroupRepository
func NewArtsGroupRepository(db *gorm.DB) ArtsGroupRepository {
	return &artsGroupRepository{db: db}
}

// List returns arts groups with page/limit pagination (admin listing)
func (r *artsGroupRepository) List(page, limit int) ([]*domain.ArtsGroup, int64, error) {
	var groups []*domain.ArtsGroup
	var total int64

	query := r.db.Model(&domain.ArtsGroup{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// FindByID finds an arts group by ID
func (r *artsGroupRepository) FindByID(id uint64) (*domain.ArtsGroup, error) {
	var group domain.ArtsGroup
	err := r.db.Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// FindBySlug finds a published arts group by slug
func (r *artsGroupRepository) FindBySlug(slug string) (*domain.ArtsGroup, error) {
	var group domain.ArtsGroup
	err := r.db.
		Where("slug = ? AND status = ?", slug, domain.ArtsGroupStatusPublished).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Create creates a new arts group
func (r *artsGroupRepository) Create(group *domain.ArtsGroup) error {
	return r.db.Create(group).Error
}

// Update updates an arts group
func (r *artsGroupRepository) Update(group *domain.ArtsGroup) error {
	return r.db.Save(group).Error
}

// Delete deletes an arts group by ID
func (r *artsGroupRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.ArtsGroup{}, id).Error
}
