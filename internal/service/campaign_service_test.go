package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/localscoop/escoop-backend/internal/campaign"
	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/composer"
	"github.com/localscoop/escoop-backend/internal/domain"
)

// --- Mock Provider ---

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ListLists(ctx context.Context) (*campaign.ListsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.ListsResponse), args.Error(1)
}

func (m *mockProvider) ListSegments(ctx context.Context) (*campaign.SegmentsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.SegmentsResponse), args.Error(1)
}

func (m *mockProvider) CreateCampaign(ctx context.Context, req *campaign.CreateCampaignRequest) (*campaign.CampaignResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.CampaignResponse), args.Error(1)
}

func (m *mockProvider) UpdateCampaign(ctx context.Context, id string, req *campaign.UpdateCampaignRequest) (*campaign.CampaignResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.CampaignResponse), args.Error(1)
}

func (m *mockProvider) SendTest(ctx context.Context, id string, req *campaign.TestSendRequest) (*campaign.SendResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.SendResponse), args.Error(1)
}

func (m *mockProvider) SendFinal(ctx context.Context, id string) (*campaign.SendResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.SendResponse), args.Error(1)
}

// --- Mock NewsletterRepository ---

type mockNewsletterRepo struct {
	mock.Mock
}

func (m *mockNewsletterRepo) FindByID(id uint64) (*domain.Newsletter, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Newsletter), args.Error(1)
}

func (m *mockNewsletterRepo) ListEntries(newsletterID uint64, limit int, cursor string) ([]*domain.NewsletterEntry, domain.PageInfo, error) {
	args := m.Called(newsletterID, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.PageInfo), args.Error(2)
	}
	return args.Get(0).([]*domain.NewsletterEntry), args.Get(1).(domain.PageInfo), args.Error(2)
}

func (m *mockNewsletterRepo) Create(newsletter *domain.Newsletter) error {
	return m.Called(newsletter).Error(0)
}

func (m *mockNewsletterRepo) Save(newsletter *domain.Newsletter) error {
	return m.Called(newsletter).Error(0)
}

func (m *mockNewsletterRepo) ReplaceRestaurants(newsletterID uint64, picks []domain.NewsletterRestaurant) error {
	return m.Called(newsletterID, picks).Error(0)
}

func (m *mockNewsletterRepo) ReplaceFeaturedEvents(newsletterID uint64, featured []domain.NewsletterFeaturedEvent) error {
	return m.Called(newsletterID, featured).Error(0)
}

func (m *mockNewsletterRepo) UpdateCampaignID(newsletterID uint64, campaignID string) error {
	return m.Called(newsletterID, campaignID).Error(0)
}

func (m *mockNewsletterRepo) LinkEvent(newsletterID, eventID uint64, locations []string) error {
	return m.Called(newsletterID, eventID, locations).Error(0)
}

func (m *mockNewsletterRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Fake composition source ---

// fakeSource holds one composition in memory and records state transitions
type fakeSource struct {
	comp       composer.Composition
	previewErr error
	html       string
}

func (f *fakeSource) Get(id uint64) (*composer.Composition, error) {
	if f.comp.NewsletterID != id {
		return nil, common.ErrNewsletterNotFound
	}
	c := f.comp
	return &c, nil
}

func (f *fakeSource) Preview(_ context.Context, _ uint64) (string, error) {
	if f.previewErr != nil {
		return "", f.previewErr
	}
	return f.html, nil
}

func (f *fakeSource) SetCampaignState(_ uint64, state domain.CampaignState) error {
	f.comp.Campaign = state
	return nil
}

func readyComposition() composer.Composition {
	return composer.Composition{
		NewsletterID: 1,
		Name:         "eScoop October",
		Settings: domain.NewsletterSettings{
			SubjectLine: "October in Sarasota",
			ListIDs:     []string{"list-1"},
		},
		Campaign: domain.NewCampaignState(),
	}
}

func newTestCampaignService(source *fakeSource) (CampaignService, *mockProvider, *mockNewsletterRepo) {
	provider := new(mockProvider)
	repo := new(mockNewsletterRepo)
	svc := NewCampaignService(source, provider, repo, "The Local Scoop", "escoop@localscoop.example")
	return svc, provider, repo
}

func TestCampaignCreate(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html>issue</html>"}
	svc, provider, repo := newTestCampaignService(source)

	provider.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(req *campaign.CreateCampaignRequest) bool {
		return req.SubjectLine == "October in Sarasota" &&
			req.SenderName == "The Local Scoop" &&
			strings.Contains(req.HTML, "issue")
	})).Return(&campaign.CampaignResponse{ID: "cmp-1", Status: "draft"}, nil)
	repo.On("UpdateCampaignID", uint64(1), "cmp-1").Return(nil)

	state, err := svc.Create(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignCreated, state.Status)
	assert.Equal(t, "cmp-1", state.CampaignID)
	assert.Equal(t, state, source.comp.Campaign)
	provider.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCampaignCreateRequiresSubject(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Settings.SubjectLine = "   "
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.Create(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrMissingSubject)
	provider.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
}

func TestCampaignCreateRejectsLongSubject(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Settings.SubjectLine = strings.Repeat("x", domain.MaxSubjectLength+1)
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.Create(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrSubjectTooLong)
	provider.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
}

func TestCampaignCreateCountsSubjectRunes(t *testing.T) {
	// a max-length subject in multibyte characters is within the limit
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Settings.SubjectLine = strings.Repeat("é", domain.MaxSubjectLength)
	svc, provider, repo := newTestCampaignService(source)

	provider.On("CreateCampaign", mock.Anything, mock.Anything).
		Return(&campaign.CampaignResponse{ID: "cmp-1", Status: "draft"}, nil)
	repo.On("UpdateCampaignID", uint64(1), "cmp-1").Return(nil)

	state, err := svc.Create(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignCreated, state.Status)
}

func TestCampaignCreateRequiresRecipients(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Settings.ListIDs = nil
	source.comp.Settings.SegmentIDs = nil
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.Create(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrNoRecipients)
	provider.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
}

func TestCampaignCreateRejectsEmptyHTML(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "   "}
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.Create(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrEmptyRenderedHTML)
	provider.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
}

func TestCampaignCreateProviderFailureMovesToError(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	svc, provider, _ := newTestCampaignService(source)

	provider.On("CreateCampaign", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider error: rate limited"))

	_, err := svc.Create(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, domain.CampaignError, source.comp.Campaign.Status)
	assert.Contains(t, source.comp.Campaign.LastError, "rate limited")
}

func TestCampaignUpdateBeforeCreate(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.Update(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrCampaignNotCreated)
	provider.AssertNotCalled(t, "UpdateCampaign", mock.Anything, mock.Anything, mock.Anything)
}

func TestCampaignUpdatePreservesTestSentStatus(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignTestSent}
	svc, provider, repo := newTestCampaignService(source)

	provider.On("UpdateCampaign", mock.Anything, "cmp-1", mock.Anything).
		Return(&campaign.CampaignResponse{ID: "cmp-1"}, nil)
	repo.On("UpdateCampaignID", uint64(1), "cmp-1").Return(nil)

	state, err := svc.Update(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignTestSent, state.Status)
}

func TestCampaignSendTestBeforeCreate(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.SendTest(context.Background(), 1, []string{"editor@localscoop.example"})
	assert.ErrorIs(t, err, common.ErrCampaignNotCreated)
	provider.AssertNotCalled(t, "SendTest", mock.Anything, mock.Anything, mock.Anything)
}

func TestCampaignSendTestValidatesRecipients(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignCreated}
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.SendTest(context.Background(), 1, []string{"not-an-email", ""})
	assert.ErrorIs(t, err, common.ErrInvalidTestRecipients)
	provider.AssertNotCalled(t, "SendTest", mock.Anything, mock.Anything, mock.Anything)
}

func TestCampaignSendTestFallsBackToSavedRecipients(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignCreated}
	source.comp.Settings.TestRecipients = []string{"editor@localscoop.example"}
	svc, provider, repo := newTestCampaignService(source)

	provider.On("SendTest", mock.Anything, "cmp-1", &campaign.TestSendRequest{
		Recipients: []string{"editor@localscoop.example"},
	}).Return(&campaign.SendResponse{ID: "cmp-1", Status: "queued"}, nil)
	repo.On("UpdateCampaignID", uint64(1), "cmp-1").Return(nil)

	state, err := svc.SendTest(context.Background(), 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignTestSent, state.Status)
	provider.AssertExpectations(t)
}

func TestCampaignSendFinal(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignTestSent}
	svc, provider, repo := newTestCampaignService(source)

	provider.On("SendFinal", mock.Anything, "cmp-1").
		Return(&campaign.SendResponse{ID: "cmp-1", Status: "sending"}, nil)
	repo.On("UpdateCampaignID", uint64(1), "cmp-1").Return(nil)

	state, err := svc.SendFinal(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignSent, state.Status)
	assert.True(t, state.Terminal())
}

func TestCampaignSendFinalRequiresRecipients(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignCreated}
	source.comp.Settings.ListIDs = nil
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.SendFinal(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrNoRecipients)
	provider.AssertNotCalled(t, "SendFinal", mock.Anything, mock.Anything)
}

func TestCampaignSentStateIsTerminal(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignSent}
	svc, provider, _ := newTestCampaignService(source)

	_, err := svc.Create(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrCampaignAlreadySent)
	_, err = svc.Update(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrCampaignAlreadySent)
	_, err = svc.SendTest(context.Background(), 1, []string{"editor@localscoop.example"})
	assert.ErrorIs(t, err, common.ErrCampaignAlreadySent)
	_, err = svc.SendFinal(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrCampaignAlreadySent)
	provider.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "SendFinal", mock.Anything, mock.Anything)
}

func TestCampaignProviderErrorKeepsCampaignID(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	source.comp.Campaign = domain.CampaignState{CampaignID: "cmp-1", Status: domain.CampaignCreated}
	svc, provider, repo := newTestCampaignService(source)

	provider.On("SendFinal", mock.Anything, "cmp-1").
		Return(nil, errors.New("provider error: timeout")).Once()
	repo.On("UpdateCampaignID", uint64(1), "cmp-1").Return(nil)

	_, err := svc.SendFinal(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, domain.CampaignError, source.comp.Campaign.Status)
	assert.Equal(t, "cmp-1", source.comp.Campaign.CampaignID, "error keeps the id for retry")

	// the error state still allows a retry
	provider.On("SendFinal", mock.Anything, "cmp-1").
		Return(&campaign.SendResponse{ID: "cmp-1", Status: "sending"}, nil).Once()

	state, err := svc.SendFinal(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.CampaignSent, state.Status)
}

func TestCampaignListProxies(t *testing.T) {
	source := &fakeSource{comp: readyComposition(), html: "<html></html>"}
	svc, provider, _ := newTestCampaignService(source)

	provider.On("ListLists", mock.Anything).Return(&campaign.ListsResponse{
		Lists: []*campaign.DistributionList{{ID: "list-1", Name: "Subscribers"}},
	}, nil)
	provider.On("ListSegments", mock.Anything).Return(&campaign.SegmentsResponse{
		Segments: []*campaign.Segment{{ID: "seg-1", Name: "Foodies"}},
	}, nil)

	lists, err := svc.ListLists(context.Background())
	assert.NoError(t, err)
	assert.Len(t, lists, 1)

	segments, err := svc.ListSegments(context.Background())
	assert.NoError(t, err)
	assert.Len(t, segments, 1)
}
