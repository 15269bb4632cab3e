package campaign

import "time"

// ErrorResponse represents a provider API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// DistributionList is a subscriber list at the email provider
type DistributionList struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SubscriberCount int    `json:"subscriber_count"`
	BlacklistCount  int    `json:"blacklist_count"`
}

// ListsResponse represents the lists listing response
type ListsResponse struct {
	Lists []*DistributionList `json:"lists"`
	Total int                 `json:"total"`
}

// Segment is a named subscriber segment at the email provider
type Segment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SegmentsResponse represents the segments listing response
type SegmentsResponse struct {
	Segments []*Segment `json:"segments"`
	Total    int        `json:"total"`
}

// CreateCampaignRequest represents a campaign create request
type CreateCampaignRequest struct {
	Name        string     `json:"name"`
	SubjectLine string     `json:"subject_line"`
	SenderName  string     `json:"sender_name"`
	SenderEmail string     `json:"sender_email"`
	HTML        string     `json:"html"`
	ListIDs     []string   `json:"list_ids,omitempty"`
	SegmentIDs  []string   `json:"segment_ids,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// UpdateCampaignRequest is the same shape as a create
type UpdateCampaignRequest = CreateCampaignRequest

// CampaignResponse represents a created or updated campaign
type CampaignResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TestSendRequest represents a test send request
type TestSendRequest struct {
	Recipients []string `json:"recipients"`
}

// SendResponse represents a send (test or final) response
type SendResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
