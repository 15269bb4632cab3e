package domain

// CampaignStatus is the provider-side lifecycle of a newsletter campaign
type CampaignStatus string

const (
	CampaignNotCreated CampaignStatus = "not_created"
	CampaignCreated    CampaignStatus = "created"
	CampaignTestSent   CampaignStatus = "test_sent"
	CampaignSent       CampaignStatus = "sent"
	CampaignError      CampaignStatus = "error"
)

// CampaignState tracks the campaign created at the external provider for
// one newsletter. Progression is one-way (not_created → created →
// test_sent → sent); error is reachable from any active state and keeps
// the campaign id so the operation can be retried.
type CampaignState struct {
	CampaignID string         `json:"campaign_id"`
	Status     CampaignStatus `json:"status"`
	LastError  string         `json:"last_error,omitempty"`
}

// NewCampaignState returns the initial state
func NewCampaignState() CampaignState {
	return CampaignState{Status: CampaignNotCreated}
}

// Terminal reports whether no further transition is allowed
func (s CampaignState) Terminal() bool {
	return s.Status == CampaignSent
}

// CanCreate reports whether a provider create call is allowed
func (s CampaignState) CanCreate() bool {
	return s.Status == CampaignNotCreated ||
		(s.Status == CampaignError && s.CampaignID == "")
}

// CanUpdate reports whether a provider update call is allowed
func (s CampaignState) CanUpdate() bool {
	switch s.Status {
	case CampaignCreated, CampaignTestSent:
		return true
	case CampaignError:
		return s.CampaignID != ""
	}
	return false
}

// CanSendTest reports whether a test send is allowed
func (s CampaignState) CanSendTest() bool {
	if s.CampaignID == "" {
		return false
	}
	switch s.Status {
	case CampaignCreated, CampaignTestSent, CampaignError:
		return true
	}
	return false
}

// CanSendFinal reports whether the final send is allowed
func (s CampaignState) CanSendFinal() bool {
	if s.CampaignID == "" {
		return false
	}
	switch s.Status {
	case CampaignCreated, CampaignTestSent, CampaignError:
		return true
	}
	return false
}

// WithError returns the state moved to error with a message, preserving
// the campaign id
func (s CampaignState) WithError(msg string) CampaignState {
	return CampaignState{CampaignID: s.CampaignID, Status: CampaignError, LastError: msg}
}
