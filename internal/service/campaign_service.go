package service

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/localscoop/escoop-backend/internal/campaign"
	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/composer"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/repository"
	"github.com/localscoop/escoop-backend/pkg/logger"
)

// CompositionSource is the slice of the builder the campaign lifecycle
// needs: the current composition, the rendered HTML, and a way to record
// state transitions back onto it
type CompositionSource interface {
	Get(id uint64) (*composer.Composition, error)
	Preview(ctx context.Context, id uint64) (string, error)
	SetCampaignState(id uint64, state domain.CampaignState) error
}

// CampaignService drives the provider-side campaign lifecycle for an
// issue. Every operation validates its preconditions before any network
// call; a provider failure moves the state to error but keeps the
// campaign id so the operation can be retried.
type CampaignService interface {
	ListLists(ctx context.Context) ([]*campaign.DistributionList, error)
	ListSegments(ctx context.Context) ([]*campaign.Segment, error)

	Create(ctx context.Context, id uint64) (domain.CampaignState, error)
	Update(ctx context.Context, id uint64) (domain.CampaignState, error)
	SendTest(ctx context.Context, id uint64, recipients []string) (domain.CampaignState, error)
	SendFinal(ctx context.Context, id uint64) (domain.CampaignState, error)
}

type campaignService struct {
	source      CompositionSource
	provider    campaign.Provider
	repo        repository.NewsletterRepository
	senderName  string
	senderEmail string
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(
	source CompositionSource,
	provider campaign.Provider,
	repo repository.NewsletterRepository,
	senderName, senderEmail string,
) CampaignService {
	return &campaignService{
		source:      source,
		provider:    provider,
		repo:        repo,
		senderName:  senderName,
		senderEmail: senderEmail,
	}
}

// ListLists proxies the provider's distribution lists
func (s *campaignService) ListLists(ctx context.Context) ([]*campaign.DistributionList, error) {
	resp, err := s.provider.ListLists(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// ListSegments proxies the provider's subscriber segments
func (s *campaignService) ListSegments(ctx context.Context) ([]*campaign.Segment, error) {
	resp, err := s.provider.ListSegments(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Segments, nil
}

// Create creates the campaign at the provider from the current
// composition. Allowed only when no campaign exists yet.
func (s *campaignService) Create(ctx context.Context, id uint64) (domain.CampaignState, error) {
	comp, err := s.source.Get(id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if comp.Campaign.Terminal() {
		return comp.Campaign, common.ErrCampaignAlreadySent
	}
	if !comp.Campaign.CanCreate() {
		return comp.Campaign, common.ErrInvalidInput
	}

	req, err := s.buildRequest(ctx, id, comp)
	if err != nil {
		return comp.Campaign, err
	}

	resp, err := s.provider.CreateCampaign(ctx, req)
	if err != nil {
		return s.fail(id, comp.Campaign, err)
	}

	state := domain.CampaignState{CampaignID: resp.ID, Status: domain.CampaignCreated}
	s.record(id, state)
	return state, nil
}

// Update pushes the current composition onto the existing campaign.
// Allowed after create and after a test send, and as a retry from error
// when a campaign id exists.
func (s *campaignService) Update(ctx context.Context, id uint64) (domain.CampaignState, error) {
	comp, err := s.source.Get(id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if comp.Campaign.Terminal() {
		return comp.Campaign, common.ErrCampaignAlreadySent
	}
	if !comp.Campaign.CanUpdate() {
		return comp.Campaign, common.ErrCampaignNotCreated
	}

	req, err := s.buildRequest(ctx, id, comp)
	if err != nil {
		return comp.Campaign, err
	}

	if _, err := s.provider.UpdateCampaign(ctx, comp.Campaign.CampaignID, req); err != nil {
		return s.fail(id, comp.Campaign, err)
	}

	state := domain.CampaignState{CampaignID: comp.Campaign.CampaignID, Status: domain.CampaignCreated}
	if comp.Campaign.Status == domain.CampaignTestSent {
		state.Status = domain.CampaignTestSent
	}
	s.record(id, state)
	return state, nil
}

// SendTest sends the campaign to the given recipients only. Recipients
// must parse as email addresses; invalid ones reject the whole call
// before any network traffic.
func (s *campaignService) SendTest(ctx context.Context, id uint64, recipients []string) (domain.CampaignState, error) {
	comp, err := s.source.Get(id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if comp.Campaign.Terminal() {
		return comp.Campaign, common.ErrCampaignAlreadySent
	}
	if !comp.Campaign.CanSendTest() {
		return comp.Campaign, common.ErrCampaignNotCreated
	}

	if len(recipients) == 0 {
		recipients = comp.Settings.TestRecipients
	}
	valid := validEmails(recipients)
	if len(valid) == 0 {
		return comp.Campaign, common.ErrInvalidTestRecipients
	}

	resp, err := s.provider.SendTest(ctx, comp.Campaign.CampaignID, &campaign.TestSendRequest{Recipients: valid})
	if err != nil {
		return s.fail(id, comp.Campaign, err)
	}
	logger.Info("test send accepted: campaign=%s status=%s", comp.Campaign.CampaignID, resp.Status)

	state := domain.CampaignState{CampaignID: comp.Campaign.CampaignID, Status: domain.CampaignTestSent}
	s.record(id, state)
	return state, nil
}

// SendFinal sends the campaign to its configured lists and segments.
// The sent state is terminal.
func (s *campaignService) SendFinal(ctx context.Context, id uint64) (domain.CampaignState, error) {
	comp, err := s.source.Get(id)
	if err != nil {
		return domain.CampaignState{}, err
	}
	if comp.Campaign.Terminal() {
		return comp.Campaign, common.ErrCampaignAlreadySent
	}
	if !comp.Campaign.CanSendFinal() {
		return comp.Campaign, common.ErrCampaignNotCreated
	}
	if len(comp.Settings.ListIDs) == 0 && len(comp.Settings.SegmentIDs) == 0 {
		return comp.Campaign, common.ErrNoRecipients
	}

	resp, err := s.provider.SendFinal(ctx, comp.Campaign.CampaignID)
	if err != nil {
		return s.fail(id, comp.Campaign, err)
	}
	logger.Info("final send accepted: campaign=%s status=%s", comp.Campaign.CampaignID, resp.Status)

	state := domain.CampaignState{CampaignID: comp.Campaign.CampaignID, Status: domain.CampaignSent}
	s.record(id, state)
	return state, nil
}

// buildRequest validates the composition and renders the HTML for a
// create or update call
func (s *campaignService) buildRequest(ctx context.Context, id uint64, comp *composer.Composition) (*campaign.CreateCampaignRequest, error) {
	subject := strings.TrimSpace(comp.Settings.SubjectLine)
	if subject == "" {
		return nil, common.ErrMissingSubject
	}
	if utf8.RuneCountInString(subject) > domain.MaxSubjectLength {
		return nil, common.ErrSubjectTooLong
	}
	if len(comp.Settings.ListIDs) == 0 && len(comp.Settings.SegmentIDs) == 0 {
		return nil, common.ErrNoRecipients
	}

	html, err := s.source.Preview(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(html) == "" {
		return nil, common.ErrEmptyRenderedHTML
	}

	name := comp.Settings.DisplayName
	if name == "" {
		name = comp.Name
	}
	return &campaign.CreateCampaignRequest{
		Name:        name,
		SubjectLine: subject,
		SenderName:  s.senderName,
		SenderEmail: s.senderEmail,
		HTML:        html,
		ListIDs:     comp.Settings.ListIDs,
		SegmentIDs:  comp.Settings.SegmentIDs,
		ScheduledAt: comp.Settings.ScheduledAt,
	}, nil
}

// fail moves the composition to the error state, keeping the campaign id
func (s *campaignService) fail(id uint64, prev domain.CampaignState, cause error) (domain.CampaignState, error) {
	logger.Error("campaign provider call failed: %v", cause)
	state := prev.WithError(cause.Error())
	s.record(id, state)
	return state, cause
}

// record writes the state onto the composition and persists the campaign
// id when one exists
func (s *campaignService) record(id uint64, state domain.CampaignState) {
	if err := s.source.SetCampaignState(id, state); err != nil {
		logger.Error("failed to record campaign state: %v", err)
	}
	if state.CampaignID != "" {
		if err := s.repo.UpdateCampaignID(id, state.CampaignID); err != nil {
			logger.Error("failed to persist campaign id: %v", err)
		}
	}
}

func validEmails(addresses []string) []string {
	var valid []string
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, err := mail.ParseAddress(a); err != nil {
			continue
		}
		valid = append(valid, a)
	}
	return valid
}
