package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/middleware"
	"github.com/localscoop/escoop-backend/internal/service"
	"github.com/localscoop/escoop-backend/pkg/ginutil"
)

// NewsletterHandler handles HTTP requests for the eScoop builder and the
// campaign lifecycle
type NewsletterHandler struct {
	newsletters service.NewsletterService
	campaigns   service.CampaignService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletters service.NewsletterService, campaigns service.CampaignService) *NewsletterHandler {
	return &NewsletterHandler{newsletters: newsletters, campaigns: campaigns}
}

func (h *NewsletterHandler) newsletterID(c *gin.Context) (uint64, bool) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid newsletter ID", err)
		return 0, false
	}
	return id, true
}

func (h *NewsletterHandler) respondComposition(c *gin.Context, id uint64, err error) {
	if err != nil {
		h.builderError(c, err)
		return
	}
	comp, err := h.newsletters.Get(id)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

func (h *NewsletterHandler) builderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNewsletterNotFound):
		common.ErrorResponse(c, 404, "Newsletter not found", err)
	case errors.Is(err, common.ErrRestaurantNotFound):
		common.ErrorResponse(c, 404, "Restaurant not found", err)
	case errors.Is(err, common.ErrEventNotFound):
		common.ErrorResponse(c, 404, "Event not found", err)
	case errors.Is(err, common.ErrSubjectTooLong):
		common.ErrorResponse(c, 422, "Subject line exceeds 60 characters", err)
	default:
		common.ErrorResponse(c, 500, "Builder operation failed", err)
	}
}

// OpenBuilder godoc
// @Summary      Open the newsletter builder
// @Description  Loads the issue into a builder session; reopening keeps in-progress edits
// @Tags         newsletters
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/open [post]
// @Security     BearerAuth
func (h *NewsletterHandler) OpenBuilder(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	comp, err := h.newsletters.Open(id)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// GetComposition godoc
// @Summary      Get the current composition
// @Tags         newsletters
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id} [get]
// @Security     BearerAuth
func (h *NewsletterHandler) GetComposition(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	comp, err := h.newsletters.Get(id)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// CloseBuilder godoc
// @Summary      Close the builder session
// @Description  Discards in-progress edits that were not saved
// @Tags         newsletters
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/session [delete]
// @Security     BearerAuth
func (h *NewsletterHandler) CloseBuilder(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	h.newsletters.Close(id)
	common.SuccessResponse(c, gin.H{"closed": true}, nil)
}

// LoadMoreEntries godoc
// @Summary      Load the next page of auto-linked entries
// @Description  Appends the next page; already-loaded entries keep their selection
// @Tags         newsletters
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/entries/load-more [post]
// @Security     BearerAuth
func (h *NewsletterHandler) LoadMoreEntries(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	comp, err := h.newsletters.LoadMoreEntries(id)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// ToggleEntry godoc
// @Summary      Toggle an entry's inclusion
// @Tags         newsletters
// @Produce      json
// @Param        id       path  int  true  "Newsletter ID"
// @Param        entryID  path  int  true  "Entry ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Router       /admin/newsletters/{id}/entries/{entryID}/toggle [post]
// @Security     BearerAuth
func (h *NewsletterHandler) ToggleEntry(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	entryID, err := ginutil.ParamUint64(c, "entryID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid entry ID", err)
		return
	}
	comp, err := h.newsletters.ToggleEntry(id, entryID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

type addRestaurantRequest struct {
	RestaurantID uint64 `json:"restaurant_id" binding:"required"`
}

// AddRestaurant godoc
// @Summary      Curate a restaurant into the issue
// @Tags         newsletters
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Newsletter ID"
// @Param        body  body  addRestaurantRequest  true  "Restaurant to add"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/restaurants [post]
// @Security     BearerAuth
func (h *NewsletterHandler) AddRestaurant(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	var req addRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	comp, err := h.newsletters.AddRestaurant(id, req.RestaurantID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// RemoveRestaurant godoc
// @Summary      Remove a curated restaurant
// @Tags         newsletters
// @Produce      json
// @Param        id            path  int  true  "Newsletter ID"
// @Param        restaurantID  path  int  true  "Restaurant ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Router       /admin/newsletters/{id}/restaurants/{restaurantID} [delete]
// @Security     BearerAuth
func (h *NewsletterHandler) RemoveRestaurant(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	restaurantID, err := ginutil.ParamUint64(c, "restaurantID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid restaurant ID", err)
		return
	}
	comp, err := h.newsletters.RemoveRestaurant(id, restaurantID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

type moveRequest struct {
	To int `json:"to"`
}

// MoveRestaurant godoc
// @Summary      Reorder a curated restaurant
// @Tags         newsletters
// @Accept       json
// @Produce      json
// @Param        id            path  int          true  "Newsletter ID"
// @Param        restaurantID  path  int          true  "Restaurant ID"
// @Param        body          body  moveRequest  true  "Target position"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Router       /admin/newsletters/{id}/restaurants/{restaurantID}/move [post]
// @Security     BearerAuth
func (h *NewsletterHandler) MoveRestaurant(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	restaurantID, err := ginutil.ParamUint64(c, "restaurantID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid restaurant ID", err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	comp, err := h.newsletters.MoveRestaurant(id, restaurantID, req.To)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// SetPickOfMonth godoc
// @Summary      Flag a curated restaurant as pick of the month
// @Description  At most one pick carries the flag; it moves to the named restaurant
// @Tags         newsletters
// @Produce      json
// @Param        id            path  int  true  "Newsletter ID"
// @Param        restaurantID  path  int  true  "Restaurant ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Router       /admin/newsletters/{id}/restaurants/{restaurantID}/pick-of-month [post]
// @Security     BearerAuth
func (h *NewsletterHandler) SetPickOfMonth(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	restaurantID, err := ginutil.ParamUint64(c, "restaurantID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid restaurant ID", err)
		return
	}
	comp, err := h.newsletters.SetPickOfMonth(id, restaurantID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

type addFeaturedRequest struct {
	EventID uint64 `json:"event_id" binding:"required"`
}

// AddFeaturedEvent godoc
// @Summary      Curate an event into the featured section
// @Tags         newsletters
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "Newsletter ID"
// @Param        body  body  addFeaturedRequest  true  "Event to feature"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/featured [post]
// @Security     BearerAuth
func (h *NewsletterHandler) AddFeaturedEvent(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	var req addFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	comp, err := h.newsletters.AddFeaturedEvent(id, req.EventID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// RemoveFeaturedEvent godoc
// @Summary      Remove a featured event
// @Tags         newsletters
// @Produce      json
// @Param        id       path  int  true  "Newsletter ID"
// @Param        eventID  path  int  true  "Event ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Router       /admin/newsletters/{id}/featured/{eventID} [delete]
// @Security     BearerAuth
func (h *NewsletterHandler) RemoveFeaturedEvent(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	eventID, err := ginutil.ParamUint64(c, "eventID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}
	comp, err := h.newsletters.RemoveFeaturedEvent(id, eventID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// ToggleFeatured godoc
// @Summary      Toggle a curated event's featured flag
// @Tags         newsletters
// @Produce      json
// @Param        id       path  int  true  "Newsletter ID"
// @Param        eventID  path  int  true  "Event ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Router       /admin/newsletters/{id}/featured/{eventID}/toggle [post]
// @Security     BearerAuth
func (h *NewsletterHandler) ToggleFeatured(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	eventID, err := ginutil.ParamUint64(c, "eventID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}
	comp, err := h.newsletters.ToggleFeatured(id, eventID)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// UpdateSettings godoc
// @Summary      Update the send configuration
// @Tags         newsletters
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "Newsletter ID"
// @Param        body  body  domain.NewsletterSettings  true  "Settings"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/settings [put]
// @Security     BearerAuth
func (h *NewsletterHandler) UpdateSettings(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	var settings domain.NewsletterSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	comp, err := h.newsletters.UpdateSettings(id, settings)
	if err != nil {
		h.builderError(c, err)
		return
	}
	common.SuccessResponse(c, comp, nil)
}

// Preview godoc
// @Summary      Preview the rendered issue
// @Description  Returns the newsletter HTML rendered from the live composition
// @Tags         newsletters
// @Produce      html
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {string}  string  "Rendered HTML"
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/preview [get]
// @Security     BearerAuth
func (h *NewsletterHandler) Preview(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	html, err := h.newsletters.Preview(c.Request.Context(), id)
	if err != nil {
		h.builderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// SaveNewsletter godoc
// @Summary      Save the composition
// @Description  Persists settings and curated picks; entry selection is not saved
// @Tags         newsletters
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=composer.Composition}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/save [post]
// @Security     BearerAuth
func (h *NewsletterHandler) SaveNewsletter(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	h.respondComposition(c, id, h.newsletters.Save(c.Request.Context(), id))
}

func (h *NewsletterHandler) campaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNewsletterNotFound):
		common.ErrorResponse(c, 404, "Newsletter not found", err)
	case errors.Is(err, common.ErrCampaignAlreadySent):
		common.ErrorResponse(c, 409, "Campaign already sent", err)
	case errors.Is(err, common.ErrCampaignNotCreated):
		common.ErrorResponse(c, 409, "Campaign has not been created", err)
	case errors.Is(err, common.ErrMissingSubject),
		errors.Is(err, common.ErrSubjectTooLong),
		errors.Is(err, common.ErrNoRecipients),
		errors.Is(err, common.ErrEmptyRenderedHTML),
		errors.Is(err, common.ErrInvalidTestRecipients),
		errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, 422, err.Error(), err)
	default:
		common.ErrorResponse(c, 502, "Campaign provider call failed", err)
	}
}

// CreateCampaign godoc
// @Summary      Create the provider campaign
// @Description  Validates the composition, renders the HTML and creates the campaign
// @Tags         campaigns
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=domain.CampaignState}
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/campaign [post]
// @Security     BearerAuth
func (h *NewsletterHandler) CreateCampaign(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	state, err := h.campaigns.Create(c.Request.Context(), id)
	if err != nil {
		h.campaignError(c, err)
		return
	}
	common.SuccessResponse(c, state, nil)
}

// UpdateCampaign godoc
// @Summary      Push the composition onto the existing campaign
// @Tags         campaigns
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=domain.CampaignState}
// @Failure      409  {object}  common.APIResponse
// @Failure      502  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/campaign [put]
// @Security     BearerAuth
func (h *NewsletterHandler) UpdateCampaign(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	state, err := h.campaigns.Update(c.Request.Context(), id)
	if err != nil {
		h.campaignError(c, err)
		return
	}
	common.SuccessResponse(c, state, nil)
}

type testSendBody struct {
	Recipients []string `json:"recipients"`
}

// SendTestCampaign godoc
// @Summary      Send the campaign to test recipients
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path  int           true   "Newsletter ID"
// @Param        body  body  testSendBody  false  "Recipients (falls back to saved test recipients)"
// @Success      200  {object}  common.APIResponse{data=domain.CampaignState}
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/campaign/test [post]
// @Security     BearerAuth
func (h *NewsletterHandler) SendTestCampaign(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	var body testSendBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			common.ErrorResponse(c, 400, "Invalid request body", err)
			return
		}
	}
	state, err := h.campaigns.SendTest(c.Request.Context(), id, body.Recipients)
	middleware.CountCampaignSend("test", err)
	if err != nil {
		h.campaignError(c, err)
		return
	}
	common.SuccessResponse(c, state, nil)
}

// SendFinalCampaign godoc
// @Summary      Send the campaign to its lists and segments
// @Description  Final send; the sent state is terminal
// @Tags         campaigns
// @Produce      json
// @Param        id  path  int  true  "Newsletter ID"
// @Success      200  {object}  common.APIResponse{data=domain.CampaignState}
// @Failure      409  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/newsletters/{id}/campaign/send [post]
// @Security     BearerAuth
func (h *NewsletterHandler) SendFinalCampaign(c *gin.Context) {
	id, ok := h.newsletterID(c)
	if !ok {
		return
	}
	state, err := h.campaigns.SendFinal(c.Request.Context(), id)
	middleware.CountCampaignSend("final", err)
	if err != nil {
		h.campaignError(c, err)
		return
	}
	common.SuccessResponse(c, state, nil)
}

// ListCampaignLists godoc
// @Summary      List provider distribution lists
// @Tags         campaigns
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]campaign.DistributionList}
// @Failure      502  {object}  common.APIResponse
// @Router       /admin/campaign/lists [get]
// @Security     BearerAuth
func (h *NewsletterHandler) ListCampaignLists(c *gin.Context) {
	lists, err := h.campaigns.ListLists(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 502, "Failed to fetch distribution lists", err)
		return
	}
	common.SuccessResponse(c, lists, nil)
}

// ListCampaignSegments godoc
// @Summary      List provider subscriber segments
// @Tags         campaigns
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]campaign.Segment}
// @Failure      502  {object}  common.APIResponse
// @Router       /admin/campaign/segments [get]
// @Security     BearerAuth
func (h *NewsletterHandler) ListCampaignSegments(c *gin.Context) {
	segments, err := h.campaigns.ListSegments(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 502, "Failed to fetch segments", err)
		return
	}
	common.SuccessResponse(c, segments, nil)
}
