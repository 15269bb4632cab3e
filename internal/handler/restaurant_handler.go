package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/internal/service"
	"github.com/localscoop/escoop-backend/pkg/ginutil"
)

// RestaurantHandler handles HTTP requests for directory restaurants
type RestaurantHandler struct {
	service service.RestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(service service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// ListRestaurants godoc
// @Summary      List directory restaurants
// @Description  Returns one page of active restaurants matching the filters
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        search       query  string  false  "Free-text search"
// @Param        city         query  string  false  "City"
// @Param        state        query  string  false  "State"
// @Param        cuisine_ids  query  string  false  "Comma-separated cuisine IDs"
// @Param        price_tier   query  string  false  "$, $$ or $$$"
// @Param        sort         query  string  false  "name or newest"
// @Param        limit        query  int     false  "Page size (max 100)"
// @Param        cursor       query  string  false  "Opaque pagination cursor"
// @Success      200  {object}  common.APIResponse{data=service.RestaurantListResult}
// @Failure      400  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
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
		common.ErrorResponse(c, 500, "Failed to fetch restaurants", err)
		return
	}

	common.SuccessResponse(c, result.Restaurants, pageMeta(limit, result.Page))
}

// GetRestaurant godoc
// @Summary      Get restaurant detail
// @Description  Returns an active restaurant by slug
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Restaurant slug"
// @Success      200  {object}  common.APIResponse{data=domain.RestaurantResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /restaurants/{slug} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, common.ErrRestaurantNotFound) {
			common.ErrorResponse(c, 404, "Restaurant not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch restaurant", err)
		return
	}
	common.SuccessResponse(c, restaurant, nil)
}

// SearchRestaurants godoc
// @Summary      Search restaurants by name
// @Description  Name-prefix search used by the newsletter builder pick flow
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        q      query  string  true   "Name prefix"
// @Param        limit  query  int     false  "Max results"
// @Success      200  {object}  common.APIResponse{data=[]domain.RestaurantResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /restaurants/search [get]
func (h *RestaurantHandler) SearchRestaurants(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		common.ErrorResponse(c, 400, "Missing search query", nil)
		return
	}
	limit := ginutil.QueryInt(c, "limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	results, err := h.service.Search(q, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to search restaurants", err)
		return
	}
	common.SuccessResponse(c, results, nil)
}

// CreateRestaurant godoc
// @Summary      Create restaurant
// @Description  Creates a directory restaurant (editor only)
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        restaurant  body  domain.Restaurant  true  "Restaurant"
// @Success      201  {object}  common.APIResponse{data=domain.RestaurantResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/restaurants [post]
// @Security     BearerAuth
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var restaurant domain.Restaurant
	if err := c.ShouldBindJSON(&restaurant); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	resp, err := h.service.Create(&restaurant)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create restaurant", err)
		return
	}
	common.CreatedResponse(c, resp)
}

// UpdateRestaurant godoc
// @Summary      Update restaurant
// @Description  Updates a directory restaurant (editor only)
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id          path  int                true  "Restaurant ID"
// @Param        restaurant  body  domain.Restaurant  true  "Restaurant"
// @Success      200  {object}  common.APIResponse{data=domain.RestaurantResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/restaurants/{id} [put]
// @Security     BearerAuth
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid restaurant ID", err)
		return
	}

	var restaurant domain.Restaurant
	if err := c.ShouldBindJSON(&restaurant); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	restaurant.ID = id

	resp, err := h.service.Update(&restaurant)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update restaurant", err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// DeleteRestaurant godoc
// @Summary      Delete restaurant
// @Description  Deletes a directory restaurant (editor only)
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "Restaurant ID"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/restaurants/{id} [delete]
// @Security     BearerAuth
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid restaurant ID", err)
		return
	}
	if err := h.service.Delete(id); err != nil {
		common.ErrorResponse(c, 500, "Failed to delete restaurant", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
