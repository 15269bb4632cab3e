package domain

import (
	"time"
)

// WizardStep tracks how far an arts-group record has progressed through
// the multi-step creation flow
type WizardStep string

const (
	WizardStepProfile WizardStep = "profile"
	WizardStepDetails WizardStep = "details"
	WizardStepMedia   WizardStep = "media"
	WizardStepReview  WizardStep = "review"
)

// ArtsGroupStatus represents the publication status of an arts group
type ArtsGroupStatus string

const (
	ArtsGroupStatusDraft     ArtsGroupStatus = "draft"
	ArtsGroupStatusPublished ArtsGroupStatus = "published"
)

// ArtsGroup represents a performing/visual arts organization created
// through the wizard flow
// Table: arts_groups
type ArtsGroup struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"column:name" json:"name"`
	Slug            string          `gorm:"column:slug;uniqueIndex" json:"slug"`
	Summary         string          `gorm:"column:summary" json:"summary"`
	Description     string          `gorm:"column:description" json:"description"`
	Website         string          `gorm:"column:website" json:"website"`
	City            string          `gorm:"column:city" json:"city"`
	State           string          `gorm:"column:state" json:"state"`
	ImageDesktopURL string          `gorm:"column:image_desktop_url" json:"image_desktop_url"`
	ImageMobileURL  string          `gorm:"column:image_mobile_url" json:"image_mobile_url"`
	Step            WizardStep      `gorm:"column:step" json:"step"`
	Status          ArtsGroupStatus `gorm:"column:status" json:"status"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for ArtsGroup model
func (ArtsGroup) TableName() string {
	return "arts_groups"
}

// CreateArtsGroupRequest starts a wizard draft (profile step only)
type CreateArtsGroupRequest struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
	City  string `json:"city"`
	State string `json:"state"`
}

// UpdateArtsGroupRequest applies a partial update for one wizard step.
// Pointer fields distinguish "not provided" from zero values.
type UpdateArtsGroupRequest struct {
	Name            *string `json:"name"`
	Summary         *string `json:"summary"`
	Description     *string `json:"description"`
	Website         *string `json:"website"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	ImageDesktopURL *string `json:"image_desktop_url"`
	ImageMobileURL  *string `json:"image_mobile_url"`
	Step            *string `json:"step"`
}
