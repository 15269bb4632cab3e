package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/directory"
	"github.com/localscoop/escoop-backend/internal/domain"
)

// BrowseHandler exposes session-scoped directory browsing: filters and
// typed search are held server side per session, and loading accumulates
// pages until the filters change
type BrowseHandler struct {
	sessions *directory.Sessions
}

// NewBrowseHandler creates a new BrowseHandler
func NewBrowseHandler(sessions *directory.Sessions) *BrowseHandler {
	return &BrowseHandler{sessions: sessions}
}

type browseSearchRequest struct {
	Text   string `json:"text"`
	Submit bool   `json:"submit"`
}

// OpenBrowseSession godoc
// @Summary      Open a browse session
// @Description  Creates a browsing session with cleared filters pinned to the market
// @Tags         browse
// @Produce      json
// @Success      201  {object}  common.APIResponse
// @Router       /browse [post]
func (h *BrowseHandler) OpenBrowseSession(c *gin.Context) {
	id, session := h.sessions.Open()
	common.CreatedResponse(c, gin.H{
		"session_id": id,
		"criteria":   session.Events.Criteria(),
	})
}

// CloseBrowseSession godoc
// @Summary      Close a browse session
// @Tags         browse
// @Produce      json
// @Param        sid  path  string  true  "Browse session ID"
// @Success      200  {object}  common.APIResponse
// @Router       /browse/{sid} [delete]
func (h *BrowseHandler) CloseBrowseSession(c *gin.Context) {
	h.sessions.Close(c.Param("sid"))
	common.SuccessResponse(c, gin.H{"closed": true}, nil)
}

func (h *BrowseHandler) session(c *gin.Context) (*directory.Session, bool) {
	session, err := h.sessions.Get(c.Param("sid"))
	if err != nil {
		common.ErrorResponse(c, 404, "Browse session not found", err)
		return nil, false
	}
	return session, true
}

// SetEventFilters godoc
// @Summary      Replace event filters
// @Description  Replaces the session's event criteria and restarts pagination
// @Tags         browse
// @Accept       json
// @Produce      json
// @Param        sid       path  string           true  "Browse session ID"
// @Param        criteria  body  domain.Criteria  true  "Filter criteria"
// @Success      200  {object}  common.APIResponse{data=domain.Criteria}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /browse/{sid}/events/filters [put]
func (h *BrowseHandler) SetEventFilters(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var criteria domain.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	if err := normalizeCriteria(&criteria); err != nil {
		common.ErrorResponse(c, 400, "Invalid filter criteria", err)
		return
	}
	session.Events.SetCriteria(criteria)
	common.SuccessResponse(c, session.Events.Criteria(), nil)
}

// SearchEvents godoc
// @Summary      Stage event search text
// @Description  Stages typed search text; it is promoted into the criteria after a quiet period, or immediately when submit is set
// @Tags         browse
// @Accept       json
// @Produce      json
// @Param        sid     path  string  true  "Browse session ID"
// @Param        search  body  browseSearchRequest  true  "Search input"
// @Success      200  {object}  common.APIResponse{data=domain.Criteria}
// @Failure      404  {object}  common.APIResponse
// @Router       /browse/{sid}/events/search [post]
func (h *BrowseHandler) SearchEvents(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req browseSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	session.Events.SetSearchText(req.Text)
	if req.Submit {
		session.Events.SubmitSearch()
	}
	common.SuccessResponse(c, session.Events.Criteria(), nil)
}

// LoadEvents godoc
// @Summary      Load the next page of events
// @Description  Fetches the next page for the active criteria and returns the full accumulation
// @Tags         browse
// @Produce      json
// @Param        sid  path  string  true  "Browse session ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.EventResponse}
// @Failure      404  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /browse/{sid}/events/load [post]
func (h *BrowseHandler) LoadEvents(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	items, err := session.Events.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, common.ErrInvalidCursor) {
			common.ErrorResponse(c, 400, "Invalid cursor", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to load events", err)
		return
	}
	common.SuccessResponse(c, items, &common.Meta{
		Total:   session.Events.Total(),
		HasMore: session.Events.HasMore(),
	})
}

// ClearEventFilters godoc
// @Summary      Clear event filters
// @Description  Resets every filter except the pinned market
// @Tags         browse
// @Produce      json
// @Param        sid  path  string  true  "Browse session ID"
// @Success      200  {object}  common.APIResponse{data=domain.Criteria}
// @Failure      404  {object}  common.APIResponse
// @Router       /browse/{sid}/events/clear [post]
func (h *BrowseHandler) ClearEventFilters(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Events.Clear()
	common.SuccessResponse(c, session.Events.Criteria(), nil)
}

// SetRestaurantFilters godoc
// @Summary      Replace restaurant filters
// @Tags         browse
// @Accept       json
// @Produce      json
// @Param        sid       path  string           true  "Browse session ID"
// @Param        criteria  body  domain.Criteria  true  "Filter criteria"
// @Success      200  {object}  common.APIResponse{data=domain.Criteria}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /browse/{sid}/restaurants/filters [put]
func (h *BrowseHandler) SetRestaurantFilters(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var criteria domain.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	if err := normalizeCriteria(&criteria); err != nil {
		common.ErrorResponse(c, 400, "Invalid filter criteria", err)
		return
	}
	session.Restaurants.SetCriteria(criteria)
	common.SuccessResponse(c, session.Restaurants.Criteria(), nil)
}

// SearchRestaurantsBrowse godoc
// @Summary      Stage restaurant search text
// @Tags         browse
// @Accept       json
// @Produce      json
// @Param        sid     path  string  true  "Browse session ID"
// @Param        search  body  browseSearchRequest  true  "Search input"
// @Success      200  {object}  common.APIResponse{data=domain.Criteria}
// @Failure      404  {object}  common.APIResponse
// @Router       /browse/{sid}/restaurants/search [post]
func (h *BrowseHandler) SearchRestaurantsBrowse(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var req browseSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	session.Restaurants.SetSearchText(req.Text)
	if req.Submit {
		session.Restaurants.SubmitSearch()
	}
	common.SuccessResponse(c, session.Restaurants.Criteria(), nil)
}

// LoadRestaurants godoc
// @Summary      Load the next page of restaurants
// @Tags         browse
// @Produce      json
// @Param        sid  path  string  true  "Browse session ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.RestaurantResponse}
// @Failure      404  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /browse/{sid}/restaurants/load [post]
func (h *BrowseHandler) LoadRestaurants(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	items, err := session.Restaurants.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, common.ErrInvalidCursor) {
			common.ErrorResponse(c, 400, "Invalid cursor", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to load restaurants", err)
		return
	}
	common.SuccessResponse(c, items, &common.Meta{
		Total:   session.Restaurants.Total(),
		HasMore: session.Restaurants.HasMore(),
	})
}

// ClearRestaurantFilters godoc
// @Summary      Clear restaurant filters
// @Tags         browse
// @Produce      json
// @Param        sid  path  string  true  "Browse session ID"
// @Success      200  {object}  common.APIResponse{data=domain.Criteria}
// @Failure      404  {object}  common.APIResponse
// @Router       /browse/{sid}/restaurants/clear [post]
func (h *BrowseHandler) ClearRestaurantFilters(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Restaurants.Clear()
	common.SuccessResponse(c, session.Restaurants.Criteria(), nil)
}
