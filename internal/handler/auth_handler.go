package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/service"
)

// AuthHandler handles HTTP requests for editor authentication
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary      Editor login
// @Description  Verifies credentials and issues a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  domain.LoginRequest  true  "Credentials"
// @Success      200  {object}  common.APIResponse{data=domain.TokenResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	tokens, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.ErrorResponse(c, 401, "Invalid credentials", err)
			return
		}
		common.ErrorResponse(c, 500, "Login failed", err)
		return
	}
	common.SuccessResponse(c, tokens, nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Issues a new token pair from a valid refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  refreshRequest  true  "Refresh token"
// @Success      200  {object}  common.APIResponse{data=domain.TokenResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	tokens, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrExpiredToken) {
			common.ErrorResponse(c, 401, "Invalid refresh token", err)
			return
		}
		common.ErrorResponse(c, 500, "Token refresh failed", err)
		return
	}
	common.SuccessResponse(c, tokens, nil)
}
