package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/service"
	"github.com/localscoop/escoop-backend/pkg/ginutil"
)

// ArtsGroupHandler handles HTTP requests for arts-group profiles
type ArtsGroupHandler struct {
	service service.ArtsGroupService
}

// NewArtsGroupHandler creates a new ArtsGroupHandler
func NewArtsGroupHandler(service service.ArtsGroupService) *ArtsGroupHandler {
	return &ArtsGroupHandler{service: service}
}

// ListArtsGroups godoc
// @Summary      List arts groups
// @Description  Returns arts groups with page/limit pagination (editor only)
// @Tags         arts-groups
// @Accept       json
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  common.APIResponse{data=[]domain.ArtsGroup}
// @Router       /admin/arts-groups [get]
// @Security     BearerAuth
func (h *ArtsGroupHandler) ListArtsGroups(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := pageLimit(c)

	groups, total, err := h.service.List(page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch arts groups", err)
		return
	}
	common.SuccessResponse(c, groups, &common.Meta{Limit: limit, Total: total})
}

// GetArtsGroup godoc
// @Summary      Get arts group
// @Description  Returns a published arts group by slug
// @Tags         arts-groups
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Arts group slug"
// @Success      200  {object}  common.APIResponse{data=domain.ArtsGroup}
// @Failure      404  {object}  common.APIResponse
// @Router       /arts-groups/{slug} [get]
func (h *ArtsGroupHandler) GetArtsGroup(c *gin.Context) {
	group, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, common.ErrArtsGroupNotFound) {
			common.ErrorResponse(c, 404, "Arts group not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch arts group", err)
		return
	}
	common.SuccessResponse(c, group, nil)
}

// CreateArtsGroup godoc
// @Summary      Start arts-group wizard
// @Description  Creates a draft profile at the first wizard step
// @Tags         arts-groups
// @Accept       json
// @Produce      json
// @Param        group  body  domain.CreateArtsGroupRequest  true  "Profile step data"
// @Success      201  {object}  common.APIResponse{data=domain.ArtsGroup}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/arts-groups [post]
// @Security     BearerAuth
func (h *ArtsGroupHandler) CreateArtsGroup(c *gin.Context) {
	var req domain.CreateArtsGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	group, err := h.service.Create(&req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create arts group", err)
		return
	}
	common.CreatedResponse(c, group)
}

// UpdateArtsGroup godoc
// @Summary      Update arts-group wizard step
// @Description  Applies a partial update for one wizard step
// @Tags         arts-groups
// @Accept       json
// @Produce      json
// @Param        id     path  int                            true  "Arts group ID"
// @Param        group  body  domain.UpdateArtsGroupRequest  true  "Step data"
// @Success      200  {object}  common.APIResponse{data=domain.ArtsGroup}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/arts-groups/{id} [patch]
// @Security     BearerAuth
func (h *ArtsGroupHandler) UpdateArtsGroup(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid arts group ID", err)
		return
	}

	var req domain.UpdateArtsGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	group, err := h.service.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrArtsGroupNotFound):
			common.ErrorResponse(c, 404, "Arts group not found", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, 400, "Invalid wizard step", err)
		default:
			common.ErrorResponse(c, 500, "Failed to update arts group", err)
		}
		return
	}
	common.SuccessResponse(c, group, nil)
}

// PublishArtsGroup godoc
// @Summary      Publish arts group
// @Description  Moves a completed profile from draft to published
// @Tags         arts-groups
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Arts group ID"
// @Success      200  {object}  common.APIResponse{data=domain.ArtsGroup}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/arts-groups/{id}/publish [post]
// @Security     BearerAuth
func (h *ArtsGroupHandler) PublishArtsGroup(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid arts group ID", err)
		return
	}

	group, err := h.service.Publish(id)
	if err != nil {
		if errors.Is(err, common.ErrArtsGroupNotFound) {
			common.ErrorResponse(c, 404, "Arts group not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to publish arts group", err)
		return
	}
	common.SuccessResponse(c, group, nil)
}

// DeleteArtsGroup godoc
// @Summary      Delete arts group
// @Description  Deletes an arts group (editor only)
// @Tags         arts-groups
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Arts group ID"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/arts-groups/{id} [delete]
// @Security     BearerAuth
func (h *ArtsGroupHandler) DeleteArtsGroup(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid arts group ID", err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		common.ErrorResponse(c, 500, "Failed to delete arts group", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
