package domain

import (
	"time"
)

// EventStatus represents the publication status of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event represents a cultural event in the public directory
// Table: events
type Event struct {
	ID          uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string      `gorm:"column:title" json:"title"`
	Slug        string      `gorm:"column:slug;uniqueIndex" json:"slug"`
	Description string      `gorm:"column:description" json:"description"`
	StartDate   *time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time  `gorm:"column:end_date" json:"end_date"`
	ImageURL    string      `gorm:"column:image_url" json:"image_url"`
	Venue       string      `gorm:"column:venue" json:"venue"`
	City        string      `gorm:"column:city" json:"city"`
	State       string      `gorm:"column:state" json:"state"`
	Status      EventStatus `gorm:"column:status" json:"status"`
	IsVirtual   bool        `gorm:"column:is_virtual" json:"is_virtual"`
	IsFree      bool        `gorm:"column:is_free" json:"is_free"`
	PriceTier   PriceTier   `gorm:"column:price_tier" json:"price_tier"`
	Tags        []Tag       `gorm:"many2many:event_tags" json:"tags"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}

// Tag is a category label attached to events
// Table: tags
type Tag struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;uniqueIndex" json:"name"`
}

// TableName specifies the table name for Tag model
func (Tag) TableName() string {
	return "tags"
}

// EventSummary is the compact shape used in listings and newsletter entries
type EventSummary struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	Slug      string      `json:"slug"`
	StartDate *time.Time  `json:"start_date"`
	ImageURL  string      `json:"image_url"`
	Venue     string      `json:"venue"`
	City      string      `json:"city"`
	State     string      `json:"state"`
	Status    EventStatus `json:"status"`
	IsVirtual bool        `json:"is_virtual"`
	IsFree    bool        `json:"is_free"`
}

// ToSummary converts Event to EventSummary
func (e *Event) ToSummary() EventSummary {
	return EventSummary{
		ID:        e.ID,
		Title:     e.Title,
		Slug:      e.Slug,
		StartDate: e.StartDate,
		ImageURL:  e.ImageURL,
		Venue:     e.Venue,
		City:      e.City,
		State:     e.State,
		Status:    e.Status,
		IsVirtual: e.IsVirtual,
		IsFree:    e.IsFree,
	}
}

// EventResponse is the API response format for an event detail
type EventResponse struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
	ImageURL    string      `json:"image_url"`
	Venue       string      `json:"venue"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Status      EventStatus `json:"status"`
	IsVirtual   bool        `json:"is_virtual"`
	IsFree      bool        `json:"is_free"`
	PriceTier   PriceTier   `json:"price_tier"`
	Tags        []string    `json:"tags"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ToResponse converts Event to EventResponse
func (e *Event) ToResponse() EventResponse {
	tags := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		tags[i] = t.Name
	}
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		ImageURL:    e.ImageURL,
		Venue:       e.Venue,
		City:        e.City,
		State:       e.State,
		Status:      e.Status,
		IsVirtual:   e.IsVirtual,
		IsFree:      e.IsFree,
		PriceTier:   e.PriceTier,
		Tags:        tags,
		CreatedAt:   e.CreatedAt,
	}
}
