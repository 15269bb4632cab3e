package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/service"
	"github.com/localscoop/escoop-backend/pkg/ginutil"
)

// BannerHandler handles HTTP requests for banners
type BannerHandler struct {
	service service.BannerService
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(service service.BannerService) *BannerHandler {
	return &BannerHandler{service: service}
}

// ListActiveBanners godoc
// @Summary      List active banners
// @Description  Returns active banners ordered by slot position
// @Tags         banners
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.BannerResponse}
// @Failure      500  {object}  common.APIResponse
// @Router       /banners [get]
func (h *BannerHandler) ListActiveBanners(c *gin.Context) {
	banners, err := h.service.GetActive(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch banners", err)
		return
	}
	common.SuccessResponse(c, banners, nil)
}

// ListAllBanners godoc
// @Summary      List all banners
// @Description  Returns every banner, active or not (admin only)
// @Tags         banners
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.BannerResponse}
// @Router       /admin/banners [get]
// @Security     BearerAuth
func (h *BannerHandler) ListAllBanners(c *gin.Context) {
	banners, err := h.service.GetAll()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch banners", err)
		return
	}
	common.SuccessResponse(c, banners, nil)
}

// GetBanner godoc
// @Summary      Get banner
// @Description  Returns a banner by ID (admin only)
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Banner ID"
// @Success      200  {object}  common.APIResponse{data=domain.BannerResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/banners/{id} [get]
// @Security     BearerAuth
func (h *BannerHandler) GetBanner(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid banner ID", err)
		return
	}

	banner, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, common.ErrBannerNotFound) {
			common.ErrorResponse(c, 404, "Banner not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch banner", err)
		return
	}
	common.SuccessResponse(c, banner, nil)
}

// CreateBanner godoc
// @Summary      Create banner
// @Description  Creates a banner in one of the three slots (admin only)
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        banner  body  domain.CreateBannerRequest  true  "Banner"
// @Success      201  {object}  common.APIResponse{data=domain.BannerResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/banners [post]
// @Security     BearerAuth
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req domain.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	banner, err := h.service.Create(&req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create banner", err)
		return
	}
	common.CreatedResponse(c, banner)
}

// UpdateBanner godoc
// @Summary      Update banner
// @Description  Updates the provided banner fields (admin only)
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        id      path  int                         true  "Banner ID"
// @Param        banner  body  domain.UpdateBannerRequest  true  "Fields to change"
// @Success      200  {object}  common.APIResponse{data=domain.BannerResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/banners/{id} [patch]
// @Security     BearerAuth
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid banner ID", err)
		return
	}

	var req domain.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	banner, err := h.service.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBannerNotFound):
			common.ErrorResponse(c, 404, "Banner not found", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, 400, "Invalid banner slot", err)
		default:
			common.ErrorResponse(c, 500, "Failed to update banner", err)
		}
		return
	}
	common.SuccessResponse(c, banner, nil)
}

// DeleteBanner godoc
// @Summary      Delete banner
// @Description  Deletes a banner (admin only)
// @Tags         banners
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Banner ID"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/banners/{id} [delete]
// @Security     BearerAuth
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid banner ID", err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		common.ErrorResponse(c, 500, "Failed to delete banner", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
