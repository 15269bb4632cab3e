package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/pkg/ginutil"
)

// Directory page size bounds
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parseCriteria builds typed filter criteria from query parameters.
// Unknown date ranges and price tiers are rejected rather than ignored.
func parseCriteria(c *gin.Context) (domain.Criteria, error) {
	criteria := domain.Criteria{
		Search:      strings.TrimSpace(c.Query("search")),
		DateRange:   domain.DateRange(c.Query("date_range")),
		City:        c.Query("city"),
		State:       c.Query("state"),
		PriceTier:   domain.PriceTier(c.Query("price_tier")),
		VirtualOnly: ginutil.QueryBool(c, "virtual_only", false),
		FreeOnly:    ginutil.QueryBool(c, "free_only", false),
		Sort:        domain.SortField(c.Query("sort")),
	}

	if !criteria.DateRange.Valid() || !criteria.PriceTier.Valid() {
		return domain.Criteria{}, common.ErrInvalidInput
	}
	if criteria.DateRange == "" {
		criteria.DateRange = domain.DateRangeAll
	}
	if criteria.Sort == "" {
		criteria.Sort = domain.SortByDate
	}

	if tags := c.Query("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				criteria.Tags = append(criteria.Tags, t)
			}
		}
	}
	if cuisines := c.Query("cuisine_ids"); cuisines != "" {
		for _, part := range strings.Split(cuisines, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return domain.Criteria{}, common.ErrInvalidInput
			}
			criteria.CuisineIDs = append(criteria.CuisineIDs, id)
		}
	}

	return criteria, nil
}

// normalizeCriteria validates enum fields and applies defaults on a
// criteria set bound from a request body
func normalizeCriteria(criteria *domain.Criteria) error {
	criteria.Search = strings.TrimSpace(criteria.Search)
	if !criteria.DateRange.Valid() || !criteria.PriceTier.Valid() {
		return common.ErrInvalidInput
	}
	if criteria.DateRange == "" {
		criteria.DateRange = domain.DateRangeAll
	}
	if criteria.Sort == "" {
		criteria.Sort = domain.SortByDate
	}
	return nil
}

// pageLimit clamps the requested page size
func pageLimit(c *gin.Context) int {
	limit := ginutil.QueryInt(c, "limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return limit
}

// pageMeta converts repository page info into the response envelope meta
func pageMeta(limit int, page domain.PageInfo) *common.Meta {
	return &common.Meta{
		Limit:      limit,
		Total:      page.Total,
		HasMore:    page.HasMore,
		NextCursor: page.EndCursor,
	}
}
