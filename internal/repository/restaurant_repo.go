package repository

import (
	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// RestaurantRepository defines the interface for restaurant data access
type RestaurantRepository interface {
	List(criteria domain.Criteria, limit int, cursor string) ([]*domain.Restaurant, domain.PageInfo, error)
	FindByID(id uint64) (*domain.Restaurant, error)
	FindBySlug(slug string) (*domain.Restaurant, error)
	Search(name string, limit int) ([]*domain.Restaurant, error)
	Create(restaurant *domain.Restaurant) error
	Update(restaurant *domain.Restaurant) error
	Delete(id uint64) error
}

// restaurantRepository implements RestaurantRepository with GORM
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new RestaurantRepository
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

// List returns one page of active restaurants matching the criteria.
// Date and virtual/free flags in the criteria do not apply to restaurants
// and are ignored.
func (r *restaurantRepository) List(criteria domain.Criteria, limit int, cursor string) ([]*domain.Restaurant, domain.PageInfo, error) {
	offset, err := DecodeCursor(cursor)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}

	query := r.db.Model(&domain.Restaurant{}).
		Where("restaurants.is_active = ?", true)

	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("restaurants.name LIKE ? OR restaurants.description LIKE ?", like, like)
	}
	if criteria.City != "" {
		query = query.Where("restaurants.city = ?", criteria.City)
	}
	if criteria.State != "" {
		query = query.Where("restaurants.state = ?", criteria.State)
	}
	if criteria.PriceTier != domain.PriceTierAny {
		query = query.Where("restaurants.price_tier = ?", criteria.PriceTier)
	}
	if len(criteria.CuisineIDs) > 0 {
		query = query.Where("restaurants.id IN (?)",
			r.db.Table("restaurant_cuisines").
				Select("restaurant_cuisines.restaurant_id").
				Where("restaurant_cuisines.cuisine_id IN ?", criteria.CuisineIDs))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, domain.PageInfo{}, err
	}

	order := "restaurants.name ASC, restaurants.id ASC"
	if criteria.Sort == domain.SortByNewest {
		order = "restaurants.created_at DESC, restaurants.id DESC"
	}

	var restaurants []*domain.Restaurant
	if err := query.
		Preload("Cuisines").
		Order(order).
		Offset(offset).Limit(limit + 1).
		Find(&restaurants).Error; err != nil {
		return nil, domain.PageInfo{}, err
	}

	page := domain.PageInfo{Total: total}
	if len(restaurants) > limit {
		restaurants = restaurants[:limit]
		page.HasMore = true
		page.EndCursor = EncodeCursor(offset + limit)
	}
	return restaurants, page, nil
}

// FindByID finds a restaurant by ID
func (r *restaurantRepository) FindByID(id uint64) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.db.Preload("Cuisines").Where("id = ?", id).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindBySlug finds an active restaurant by slug
func (r *restaurantRepository) FindBySlug(slug string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.db.Preload("Cuisines").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Search finds restaurants by name prefix for the builder's add-pick flow
func (r *restaurantRepository) Search(name string, limit int) ([]*domain.Restaurant, error) {
	var restaurants []*domain.Restaurant
	err := r.db.
		Where("is_active = ? AND name LIKE ?", true, name+"%").
		Order("name ASC").
		Limit(limit).
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Create creates a new restaurant
func (r *restaurantRepository) Create(restaurant *domain.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// Update updates a restaurant
func (r *restaurantRepository) Update(restaurant *domain.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Delete deletes a restaurant by ID
func (r *restaurantRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Restaurant{}, id).Error
}
