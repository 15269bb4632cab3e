package repository

import (
	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// NewsletterRepository defines the interface for newsletter data access
type NewsletterRepository interface {
	FindByID(id uint64) (*domain.Newsletter, error)
	ListEntries(newsletterID uint64, limit int, cursor string) ([]*domain.NewsletterEntry, domain.PageInfo, error)
	Create(newsletter *domain.Newsletter) error
	Save(newsletter *domain.Newsletter) error
	ReplaceRestaurants(newsletterID uint64, picks []domain.NewsletterRestaurant) error
	ReplaceFeaturedEvents(newsletterID uint64, featured []domain.NewsletterFeaturedEvent) error
	UpdateCampaignID(newsletterID uint64, campaignID string) error
	LinkEvent(newsletterID, eventID uint64, locations []string) error
	Delete(id uint64) error
}

// newsletterRepository implements NewsletterRepository with GORM
type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new NewsletterRepository
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// FindByID loads the full persisted newsletter record used to backfill the
// builder: curated picks, featured events, editorials, settings, campaign id
func (r *newsletterRepository) FindByID(id uint64) (*domain.Newsletter, error) {
	var newsletter domain.Newsletter
	err := r.db.
		Preload("Restaurants", func(db *gorm.DB) *gorm.DB {
			return db.Order("newsletter_restaurants.position ASC")
		}).
		Preload("Restaurants.Restaurant").
		Preload("FeaturedEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("newsletter_featured_events.position ASC")
		}).
		Preload("FeaturedEvents.Event").
		Preload("Editorials").
		Where("id = ?", id).
		First(&newsletter).Error
	if err != nil {
		return nil, err
	}
	return &newsletter, nil
}

// ListEntries returns one page of auto-linked entries for a newsletter,
// with the linked event summary preloaded
func (r *newsletterRepository) ListEntries(newsletterID uint64, limit int, cursor string) ([]*domain.NewsletterEntry, domain.PageInfo, error) {
	offset, err := DecodeCursor(cursor)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}

	query := r.db.Model(&domain.NewsletterEntry{}).
		Where("newsletter_id = ?", newsletterID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, domain.PageInfo{}, err
	}

	var entries []*domain.NewsletterEntry
	if err := query.
		Preload("Event").
		Order("id ASC").
		Offset(offset).Limit(limit + 1).
		Find(&entries).Error; err != nil {
		return nil, domain.PageInfo{}, err
	}

	page := domain.PageInfo{Total: total}
	if len(entries) > limit {
		entries = entries[:limit]
		page.HasMore = true
		page.EndCursor = EncodeCursor(offset + limit)
	}
	return entries, page, nil
}

// Create creates a new newsletter record
func (r *newsletterRepository) Create(newsletter *domain.Newsletter) error {
	return r.db.Create(newsletter).Error
}

// Save persists the scalar newsletter fields (settings, dates, campaign id).
// Linked collections are replaced separately so a settings save does not
// touch curation rows.
func (r *newsletterRepository) Save(newsletter *domain.Newsletter) error {
	return r.db.Omit("Entries", "Restaurants", "FeaturedEvents", "Editorials").
		Save(newsletter).Error
}

// ReplaceRestaurants swaps the curated restaurant picks in one transaction
func (r *newsletterRepository) ReplaceRestaurants(newsletterID uint64, picks []domain.NewsletterRestaurant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("newsletter_id = ?", newsletterID).
			Delete(&domain.NewsletterRestaurant{}).Error; err != nil {
			return err
		}
		if len(picks) == 0 {
			return nil
		}
		for i := range picks {
			picks[i].ID = 0
			picks[i].NewsletterID = newsletterID
			picks[i].Position = i
		}
		return tx.Omit("Restaurant").Create(&picks).Error
	})
}

// ReplaceFeaturedEvents swaps the curated featured events in one transaction
func (r *newsletterRepository) ReplaceFeaturedEvents(newsletterID uint64, featured []domain.NewsletterFeaturedEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("newsletter_id = ?", newsletterID).
			Delete(&domain.NewsletterFeaturedEvent{}).Error; err != nil {
			return err
		}
		if len(featured) == 0 {
			return nil
		}
		for i := range featured {
			featured[i].ID = 0
			featured[i].NewsletterID = newsletterID
			featured[i].Position = i
		}
		return tx.Omit("Event").Create(&featured).Error
	})
}

// UpdateCampaignID records the provider-issued campaign id
func (r *newsletterRepository) UpdateCampaignID(newsletterID uint64, campaignID string) error {
	return r.db.Model(&domain.Newsletter{}).
		Where("id = ?", newsletterID).
		Update("campaign_id", campaignID).Error
}

// LinkEvent creates an auto entry associating an event with a newsletter
func (r *newsletterRepository) LinkEvent(newsletterID, eventID uint64, locations []string) error {
	entry := domain.NewsletterEntry{
		NewsletterID: newsletterID,
		EventID:      eventID,
		Locations:    locations,
	}
	return r.db.Create(&entry).Error
}

// Delete deletes a newsletter and its linked rows
func (r *newsletterRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&domain.NewsletterEntry{},
			&domain.NewsletterRestaurant{},
			&domain.NewsletterFeaturedEvent{},
			&domain.EditorialBlock{},
		} {
			if err := tx.Where("newsletter_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Newsletter{}, id).Error
	})
}
