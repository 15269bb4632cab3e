package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/service"
)

// MediaHandler handles HTTP requests for media uploads
type MediaHandler struct {
	service service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// PresignUpload godoc
// @Summary      Request a pre-signed upload URL
// @Description  Returns a time-limited PUT URL; clients upload image bytes directly to storage
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        body  body  service.PresignRequest  true  "Upload metadata"
// @Success      200  {object}  common.APIResponse{data=service.PresignResult}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/media/presign [post]
// @Security     BearerAuth
func (h *MediaHandler) PresignUpload(c *gin.Context) {
	var req service.PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	result, err := h.service.PresignUpload(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, 400, "Unsupported file type or size", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to presign upload", err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// DeleteMedia godoc
// @Summary      Delete an uploaded object
// @Tags         media
// @Produce      json
// @Param        key  query  string  true  "Storage key"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/media [delete]
// @Security     BearerAuth
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		common.ErrorResponse(c, 400, "Missing storage key", nil)
		return
	}
	if err := h.service.Delete(c.Request.Context(), key); err != nil {
		common.ErrorResponse(c, 500, "Failed to delete object", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
