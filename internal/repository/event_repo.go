package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/localscoop/escoop-backend/internal/domain"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	List(criteria domain.Criteria, limit int, cursor string) ([]*domain.Event, domain.PageInfo, error)
	FindByID(id uint64) (*domain.Event, error)
	FindBySlug(slug string) (*domain.Event, error)
	Create(event *domain.Event) error
	Update(event *domain.Event) error
	Delete(id uint64) error
}

// eventRepository implements EventRepository with GORM
type eventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db, now: time.Now}
}

// List returns one page of published events matching the criteria.
// The cursor is opaque; an empty cursor means the first page.
func (r *eventRepository) List(criteria domain.Criteria, limit int, cursor string) ([]*domain.Event, domain.PageInfo, error) {
	offset, err := DecodeCursor(cursor)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}

	query := r.db.Model(&domain.Event{}).
		Where("events.status = ?", domain.EventStatusPublished)
	query = r.applyCriteria(query, criteria)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, domain.PageInfo{}, err
	}

	var events []*domain.Event
	// Fetch one extra row to compute has_more without a second query
	if err := query.
		Preload("Tags").
		Order(orderClause(criteria.Sort)).
		Offset(offset).Limit(limit + 1).
		Find(&events).Error; err != nil {
		return nil, domain.PageInfo{}, err
	}

	page := domain.PageInfo{Total: total}
	if len(events) > limit {
		events = events[:limit]
		page.HasMore = true
		page.EndCursor = EncodeCursor(offset + limit)
	}
	return events, page, nil
}

func (r *eventRepository) applyCriteria(query *gorm.DB, criteria domain.Criteria) *gorm.DB {
	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("events.title LIKE ? OR events.description LIKE ?", like, like)
	}
	if criteria.City != "" {
		query = query.Where("events.city = ?", criteria.City)
	}
	if criteria.State != "" {
		query = query.Where("events.state = ?", criteria.State)
	}
	if criteria.PriceTier != domain.PriceTierAny {
		query = query.Where("events.price_tier = ?", criteria.PriceTier)
	}
	if criteria.VirtualOnly {
		query = query.Where("events.is_virtual = ?", true)
	}
	if criteria.FreeOnly {
		query = query.Where("events.is_free = ?", true)
	}
	if len(criteria.Tags) > 0 {
		query = query.Where("events.id IN (?)",
			r.db.Table("event_tags").
				Select("event_tags.event_id").
				Joins("JOIN tags ON tags.id = event_tags.tag_id").
				Where("tags.name IN ?", criteria.Tags))
	}
	if from, to, ok := dateBounds(criteria.DateRange, r.now()); ok {
		query = query.Where("events.start_date >= ? AND events.start_date < ?", from, to)
	}
	return query
}

func orderClause(sort domain.SortField) string {
	switch sort {
	case domain.SortByName:
		return "events.title ASC, events.id ASC"
	case domain.SortByNewest:
		return "events.created_at DESC, events.id DESC"
	default:
		return "events.start_date ASC, events.id ASC"
	}
}

// dateBounds converts a date-range classifier into a [from, to) window.
// ok is false for "all" (no date constraint).
func dateBounds(dr domain.DateRange, now time.Time) (time.Time, time.Time, bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch dr {
	case domain.DateRangeToday:
		return day, day.AddDate(0, 0, 1), true
	case domain.DateRangeTomorrow:
		return day.AddDate(0, 0, 1), day.AddDate(0, 0, 2), true
	case domain.DateRangeThisWeek:
		// Week runs Monday through Sunday
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := day.AddDate(0, 0, 1-weekday)
		return monday, monday.AddDate(0, 0, 7), true
	case domain.DateRangeThisWeekend:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		saturday := day.AddDate(0, 0, 6-weekday)
		return saturday, saturday.AddDate(0, 0, 2), true
	case domain.DateRangeThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// FindByID finds an event by ID
func (r *eventRepository) FindByID(id uint64) (*domain.Event, error) {
	var event domain.Event
	err := r.db.Preload("Tags").Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindBySlug finds a published event by slug
func (r *eventRepository) FindBySlug(slug string) (*domain.Event, error) {
	var event domain.Event
	err := r.db.Preload("Tags").
		Where("slug = ? AND status = ?", slug, domain.EventStatusPublished).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create creates a new event
func (r *eventRepository) Create(event *domain.Event) error {
	return r.db.Create(event).Error
}

// Update updates an event
func (r *eventRepository) Update(event *domain.Event) error {
	return r.db.Save(event).Error
}

// Delete deletes an event by ID
func (r *eventRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Event{}, id).Error
}
