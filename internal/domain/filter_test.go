package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriteriaEqual(t *testing.T) {
	a := DefaultCriteria("FL")
	b := DefaultCriteria("FL")
	assert.True(t, a.Equal(b))

	b.Search = "jazz"
	assert.False(t, a.Equal(b))

	b.Search = ""
	b.Tags = []string{"music"}
	assert.False(t, a.Equal(b))
}

func TestCriteriaCacheKeyDistinguishesFields(t *testing.T) {
	// values that could collide if fields were naively concatenated
	a := Criteria{City: "Sarasota", State: ""}
	b := Criteria{City: "", State: "Sarasota"}
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())

	c := Criteria{FreeOnly: true}
	d := Criteria{VirtualOnly: true}
	assert.NotEqual(t, c.CacheKey(), d.CacheKey())
}

func TestDefaultCriteriaPinsMarket(t *testing.T) {
	c := DefaultCriteria("FL")
	assert.Equal(t, "FL", c.State)
	assert.Equal(t, DateRangeAll, c.DateRange)
	assert.Equal(t, SortByDate, c.Sort)
	assert.Empty(t, c.Search)
	assert.Empty(t, c.Tags)
}

func TestDateRangeValid(t *testing.T) {
	assert.True(t, DateRange("").Valid())
	assert.True(t, DateRangeThisWeekend.Valid())
	assert.False(t, DateRange("fortnight").Valid())
}

func TestPriceTierValid(t *testing.T) {
	assert.True(t, PriceTierAny.Valid())
	assert.True(t, PriceTierUpscale.Valid())
	assert.False(t, PriceTier("$$$$").Valid())
}
