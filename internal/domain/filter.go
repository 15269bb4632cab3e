package domain

import (
	"fmt"
	"strings"
)

// DateRange classifies a directory date filter
type DateRange string

const (
	DateRangeAll         DateRange = "all"
	DateRangeToday       DateRange = "today"
	DateRangeTomorrow    DateRange = "tomorrow"
	DateRangeThisWeek    DateRange = "this_week"
	DateRangeThisWeekend DateRange = "this_weekend"
	DateRangeThisMonth   DateRange = "this_month"
)

// Valid reports whether the date range is one of the allowed values
func (d DateRange) Valid() bool {
	switch d {
	case DateRangeAll, DateRangeToday, DateRangeTomorrow,
		DateRangeThisWeek, DateRangeThisWeekend, DateRangeThisMonth:
		return true
	}
	return d == ""
}

// PriceTier is a coarse price classification
type PriceTier string

const (
	PriceTierAny      PriceTier = ""
	PriceTierBudget   PriceTier = "$"
	PriceTierModerate PriceTier = "$$"
	PriceTierUpscale  PriceTier = "$$$"
)

// Valid reports whether the price tier is one of the allowed values
func (p PriceTier) Valid() bool {
	switch p {
	case PriceTierAny, PriceTierBudget, PriceTierModerate, PriceTierUpscale:
		return true
	}
	return false
}

// SortField enumerates allowed directory sort orders
type SortField string

const (
	SortByDate   SortField = "date"
	SortByName   SortField = "name"
	SortByNewest SortField = "newest"
)

// Criteria is the typed filter set shared by the events and restaurants
// directories. Fields that do not apply to a directory are ignored by its
// repository (restaurants have no dates; events have no cuisines).
type Criteria struct {
	Search      string    `json:"search" form:"search"`
	DateRange   DateRange `json:"date_range" form:"date_range"`
	City        string    `json:"city" form:"city"`
	State       string    `json:"state" form:"state"`
	Tags        []string  `json:"tags" form:"tags"`
	CuisineIDs  []uint64  `json:"cuisine_ids" form:"cuisine_ids"`
	PriceTier   PriceTier `json:"price_tier" form:"price_tier"`
	VirtualOnly bool      `json:"virtual_only" form:"virtual_only"`
	FreeOnly    bool      `json:"free_only" form:"free_only"`
	Sort        SortField `json:"sort" form:"sort"`
}

// Equal reports whether two criteria select the same result set.
// Used as the pagination-accumulation guard: a criteria change always
// restarts from the first page.
func (c Criteria) Equal(other Criteria) bool {
	return c.CacheKey() == other.CacheKey()
}

// CacheKey renders the criteria as a stable string, used both for
// criteria-equality checks and as a Redis cache key component
func (c Criteria) CacheKey() string {
	var b strings.Builder
	b.WriteString(c.Search)
	b.WriteByte('|')
	b.WriteString(string(c.DateRange))
	b.WriteByte('|')
	b.WriteString(c.City)
	b.WriteByte(',')
	b.WriteString(c.State)
	b.WriteByte('|')
	b.WriteString(strings.Join(c.Tags, ","))
	b.WriteByte('|')
	for i, id := range c.CuisineIDs {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	b.WriteByte('|')
	b.WriteString(string(c.PriceTier))
	fmt.Fprintf(&b, "|%t|%t|%s", c.VirtualOnly, c.FreeOnly, c.Sort)
	return b.String()
}

// DefaultCriteria returns the cleared filter state, preserving only the
// pinned geographic market
func DefaultCriteria(market string) Criteria {
	return Criteria{
		State:     market,
		DateRange: DateRangeAll,
		Sort:      SortByDate,
	}
}

// PageInfo describes one fetched page of a cursor-paginated result
type PageInfo struct {
	EndCursor string `json:"end_cursor"`
	HasMore   bool   `json:"has_more"`
	Total     int64  `json:"total"`
}
