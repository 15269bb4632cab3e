package domain

import (
	"time"
)

// Restaurant represents a dining spot in the public directory
// Table: restaurants
type Restaurant struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Slug        string    `gorm:"column:slug;uniqueIndex" json:"slug"`
	Description string    `gorm:"column:description" json:"description"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	Address     string    `gorm:"column:address" json:"address"`
	City        string    `gorm:"column:city" json:"city"`
	State       string    `gorm:"column:state" json:"state"`
	PriceTier   PriceTier `gorm:"column:price_tier" json:"price_tier"`
	IsActive    bool      `gorm:"column:is_active" json:"is_active"`
	Cuisines    []Cuisine `gorm:"many2many:restaurant_cuisines" json:"cuisines"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Restaurant model
func (Restaurant) TableName() string {
	return "restaurants"
}

// Cuisine is a cuisine/amenity label attached to restaurants
// Table: cuisines
type Cuisine struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;uniqueIndex" json:"name"`
}

// TableName specifies the table name for Cuisine model
func (Cuisine) TableName() string {
	return "cuisines"
}

// RestaurantResponse is the API response format for a restaurant
type RestaurantResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PriceTier   PriceTier `json:"price_tier"`
	Cuisines    []string  `json:"cuisines"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Restaurant to RestaurantResponse
func (r *Restaurant) ToResponse() RestaurantResponse {
	cuisines := make([]string, len(r.Cuisines))
	for i, c := range r.Cuisines {
		cuisines[i] = c.Name
	}
	return RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		PriceTier:   r.PriceTier,
		Cuisines:    cuisines,
		CreatedAt:   r.CreatedAt,
	}
}
