package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/service"
	"github.com/localscoop/escoop-backend/pkg/ginutil"
)

// EventHandler handles HTTP requests for directory events
type EventHandler struct {
	service service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// ListEvents godoc
// @Summary      List directory events
// @Description  Returns one page of published events matching the filters
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        search      query  string  false  "Free-text search"
// @Param        date_range  query  string  false  "all, today, tomorrow, this_week, this_weekend, this_month"
// @Param        city        query  string  false  "City"
// @Param        state       query  string  false  "State"
// @Param        tags        query  string  false  "Comma-separated tag names"
// @Param        price_tier  query  string  false  "$, $$ or $$$"
// @Param        virtual_only query bool   false  "Virtual events only"
// @Param        free_only   query  bool    false  "Free events only"
// @Param        sort        query  string  false  "date, name or newest"
// @Param        limit       query  int     false  "Page size (max 100)"
// @Param        cursor      query  string  false  "Opaque pagination cursor"
// @Success      200  {object}  common.APIResponse{data=service.EventListResult}
// @Failure      400  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid filter parameters", err)
		return
	}
	limit := pageLimit(c)

	result, err := h.service.List(c.Request.Context(), criteria, limit, c.Query("cursor"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCursor) {
			common.ErrorResponse(c, 400, "Invalid cursor", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch events", err)
		return
	}

	common.SuccessResponse(c, result.Events, pageMeta(limit, result.Page))
}

// GetEvent godoc
// @Summary      Get event detail
// @Description  Returns a published event by slug
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Event slug"
// @Success      200  {object}  common.APIResponse{data=domain.EventResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /events/{slug} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, common.ErrEventNotFound) {
			common.ErrorResponse(c, 404, "Event not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch event", err)
		return
	}
	common.SuccessResponse(c, event, nil)
}

// CreateEvent godoc
// @Summary      Create event
// @Description  Creates a directory event (editor only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        event  body  domain.Event  true  "Event"
// @Success      201  {object}  common.APIResponse{data=domain.EventResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/events [post]
// @Security     BearerAuth
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var event domain.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}

	resp, err := h.service.Create(&event)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create event", err)
		return
	}
	common.CreatedResponse(c, resp)
}

// UpdateEvent godoc
// @Summary      Update event
// @Description  Updates a directory event (editor only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id     path  int           true  "Event ID"
// @Param        event  body  domain.Event  true  "Event"
// @Success      200  {object}  common.APIResponse{data=domain.EventResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/events/{id} [put]
// @Security     BearerAuth
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}

	var event domain.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	event.ID = id

	resp, err := h.service.Update(&event)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update event", err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// DeleteEvent godoc
// @Summary      Delete event
// @Description  Deletes a directory event (editor only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Event ID"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/events/{id} [delete]
// @Security     BearerAuth
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid event ID", err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		common.ErrorResponse(c, 500, "Failed to delete event", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
