package domain

import (
	"time"
)

// Banner slot positions in the rendered newsletter and on the site
const (
	BannerSlotTop    = 0
	BannerSlotMiddle = 1
	BannerSlotBottom = 2
)

// Banner represents a marquee banner with an explicit slot position
// Table: banners
type Banner struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	LinkURL     string    `gorm:"column:link_url" json:"link_url"`
	Position    int       `gorm:"column:position" json:"position"`
	IsActive    bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Banner model
func (Banner) TableName() string {
	return "banners"
}

// SlotName maps the integer position to its template slot
func (b *Banner) SlotName() string {
	switch b.Position {
	case BannerSlotTop:
		return "top"
	case BannerSlotMiddle:
		return "middle"
	case BannerSlotBottom:
		return "bottom"
	}
	return "unassigned"
}

// BannerResponse is the API response format for a banner
type BannerResponse struct {
	ID          uint64    `json:"id"`
	DisplayName string    `json:"display_name"`
	ImageURL    string    `json:"image_url"`
	LinkURL     string    `json:"link_url"`
	Position    int       `json:"position"`
	Slot        string    `json:"slot"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Banner to BannerResponse
func (b *Banner) ToResponse() BannerResponse {
	return BannerResponse{
		ID:          b.ID,
		DisplayName: b.DisplayName,
		ImageURL:    b.ImageURL,
		LinkURL:     b.LinkURL,
		Position:    b.Position,
		Slot:        b.SlotName(),
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
	}
}

// CreateBannerRequest is the request body for creating a banner
type CreateBannerRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
	LinkURL     string `json:"link_url"`
	Position    int    `json:"position" binding:"min=0,max=2"`
	IsActive    bool   `json:"is_active"`
}

// UpdateBannerRequest is the request body for updating a banner.
// Pointer fields distinguish "not provided" from zero values.
type UpdateBannerRequest struct {
	DisplayName *string `json:"display_name"`
	ImageURL    *string `json:"image_url"`
	LinkURL     *string `json:"link_url"`
	Position    *int    `json:"position"`
	IsActive    *bool   `json:"is_active"`
}
