package domain

import (
	"time"
)

// Newsletter is the persisted eScoop issue record
// Table: newsletters
type Newsletter struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string     `gorm:"column:name" json:"name"`
	Title          string     `gorm:"column:title" json:"title"`
	SendDate       *time.Time `gorm:"column:send_date" json:"send_date"`
	Market         string     `gorm:"column:market" json:"market"`
	Locations      []string   `gorm:"column:locations;serializer:json" json:"locations"`
	SubjectLine    string     `gorm:"column:subject_line" json:"subject_line"`
	TemplateName   string     `gorm:"column:template_name" json:"template_name"`
	ListIDs        []string   `gorm:"column:list_ids;serializer:json" json:"list_ids"`
	SegmentIDs     []string   `gorm:"column:segment_ids;serializer:json" json:"segment_ids"`
	ScheduledAt    *time.Time `gorm:"column:scheduled_at" json:"scheduled_at"`
	TestRecipients []string   `gorm:"column:test_recipients;serializer:json" json:"test_recipients"`
	CampaignID     string     `gorm:"column:campaign_id" json:"campaign_id"`

	Entries        []NewsletterEntry         `gorm:"foreignKey:NewsletterID" json:"entries,omitempty"`
	Restaurants    []NewsletterRestaurant    `gorm:"foreignKey:NewsletterID" json:"restaurants,omitempty"`
	FeaturedEvents []NewsletterFeaturedEvent `gorm:"foreignKey:NewsletterID" json:"featured_events,omitempty"`
	Editorials     []EditorialBlock          `gorm:"foreignKey:NewsletterID" json:"editorials,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Newsletter model
func (Newsletter) TableName() string {
	return "newsletters"
}

// NewsletterEntry is an event automatically pulled into a newsletter via
// backend linkage. Created server-side when an event is linked; loaded
// read-only into the builder. The builder-side selection flag is a display
// concern and is never persisted here.
// Table: newsletter_entries
type NewsletterEntry struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NewsletterID uint64    `gorm:"column:newsletter_id;index" json:"newsletter_id"`
	EventID      uint64    `gorm:"column:event_id" json:"event_id"`
	Event        Event     `gorm:"foreignKey:EventID" json:"event"`
	Locations    []string  `gorm:"column:locations;serializer:json" json:"locations"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for NewsletterEntry model
func (NewsletterEntry) TableName() string {
	return "newsletter_entries"
}

// NewsletterRestaurant is a manually curated restaurant pick with an
// explicit position in the issue
// Table: newsletter_restaurants
type NewsletterRestaurant struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NewsletterID uint64     `gorm:"column:newsletter_id;index" json:"newsletter_id"`
	RestaurantID uint64     `gorm:"column:restaurant_id" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant"`
	Position     int        `gorm:"column:position" json:"position"`
	PickOfMonth  bool       `gorm:"column:pick_of_month" json:"pick_of_month"`
}

// TableName specifies the table name for NewsletterRestaurant model
func (NewsletterRestaurant) TableName() string {
	return "newsletter_restaurants"
}

// NewsletterFeaturedEvent is a manually curated event, decoupled from the
// auto-linked entries
// Table: newsletter_featured_events
type NewsletterFeaturedEvent struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NewsletterID uint64 `gorm:"column:newsletter_id;index" json:"newsletter_id"`
	EventID      uint64 `gorm:"column:event_id" json:"event_id"`
	Event        Event  `gorm:"foreignKey:EventID" json:"event"`
	Position     int    `gorm:"column:position" json:"position"`
	IsFeatured   bool   `gorm:"column:is_featured" json:"is_featured"`
}

// TableName specifies the table name for NewsletterFeaturedEvent model
func (NewsletterFeaturedEvent) TableName() string {
	return "newsletter_featured_events"
}

// EditorialBlock is a free-text editorial section. The population pathway
// in the builder is still limited to loading persisted blocks.
// Table: editorial_blocks
type EditorialBlock struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NewsletterID uint64    `gorm:"column:newsletter_id;index" json:"newsletter_id"`
	Title        string    `gorm:"column:title" json:"title"`
	Content      string    `gorm:"column:content" json:"content"`
	ImageURL     string    `gorm:"column:image_url" json:"image_url"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for EditorialBlock model
func (EditorialBlock) TableName() string {
	return "editorial_blocks"
}

// NewsletterSettings is the editable send configuration of an issue
type NewsletterSettings struct {
	SubjectLine    string     `json:"subject_line"`
	DisplayName    string     `json:"display_name"`
	TemplateName   string     `json:"template_name"`
	ListIDs        []string   `json:"list_ids"`
	SegmentIDs     []string   `json:"segment_ids"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	TestRecipients []string   `json:"test_recipients"`
}

// MaxSubjectLength is the provider-imposed subject line limit
const MaxSubjectLength = 60
