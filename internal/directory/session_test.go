package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
)

func TestBrowseSearchPromotionResetsAccumulation(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(5)}
	b := newBrowse(fetch.fn, "FL", 2, 10*time.Millisecond)
	defer b.Close()

	_, err := b.Load(context.Background())
	assert.NoError(t, err)
	_, err = b.Load(context.Background())
	assert.NoError(t, err)
	assert.Len(t, b.Items(), 4)

	b.SetSearchText("ja")
	b.SetSearchText("jaz")
	b.SetSearchText("jazz")

	assert.Eventually(t, func() bool {
		return b.Criteria().Search == "jazz"
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, b.Items(), "promotion restarts pagination")
}

func TestBrowseSubmitSearchPromotesImmediately(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(3)}
	b := newBrowse(fetch.fn, "FL", 2, time.Hour)
	defer b.Close()

	b.SetSearchText("opera")
	assert.Empty(t, b.Criteria().Search, "staged text is not active yet")

	b.SubmitSearch()
	assert.Equal(t, "opera", b.Criteria().Search)
}

func TestBrowseSetCriteriaDropsStagedSearch(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(3)}
	b := newBrowse(fetch.fn, "FL", 2, 10*time.Millisecond)
	defer b.Close()

	b.SetSearchText("stale input")
	next := domain.DefaultCriteria("FL")
	next.FreeOnly = true
	b.SetCriteria(next)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, b.Criteria().Search)
	assert.True(t, b.Criteria().FreeOnly)
}

func TestBrowseClearRestoresMarketDefaults(t *testing.T) {
	fetch := &pagedFetch{items: manyItems(3)}
	b := newBrowse(fetch.fn, "FL", 2, time.Hour)
	defer b.Close()

	b.SetSearchText("dropped")
	criteria := domain.DefaultCriteria("FL")
	criteria.Search = "jazz"
	b.SetCriteria(criteria)
	b.Clear()

	assert.Equal(t, domain.DefaultCriteria("FL"), b.Criteria())
}

func noEventsFetch(_ context.Context, _ domain.Criteria, _ int, _ string) ([]domain.EventResponse, domain.PageInfo, error) {
	return nil, domain.PageInfo{}, nil
}

func noRestaurantsFetch(_ context.Context, _ domain.Criteria, _ int, _ string) ([]domain.RestaurantResponse, domain.PageInfo, error) {
	return nil, domain.PageInfo{}, nil
}

func TestSessionsOpenGetClose(t *testing.T) {
	m := NewSessions("FL", 2, noEventsFetch, noRestaurantsFetch)

	id, session := m.Open()
	assert.NotEmpty(t, id)
	assert.Equal(t, "FL", session.Events.Criteria().State)
	assert.Equal(t, "FL", session.Restaurants.Criteria().State)

	got, err := m.Get(id)
	assert.NoError(t, err)
	assert.Same(t, session, got)

	m.Close(id)
	_, err = m.Get(id)
	assert.ErrorIs(t, err, common.ErrSessionNotFound)

	// closed surfaces refuse further staged input
	session.Events.SetSearchText("ignored")
	session.Events.SubmitSearch()
	assert.Empty(t, session.Events.Criteria().Search)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewSessions("FL", 2, noEventsFetch, noRestaurantsFetch)

	idA, a := m.Open()
	idB, b := m.Open()
	assert.NotEqual(t, idA, idB)

	criteria := domain.DefaultCriteria("FL")
	criteria.Search = "jazz"
	a.Events.SetCriteria(criteria)

	assert.Equal(t, "jazz", a.Events.Criteria().Search)
	assert.Empty(t, b.Events.Criteria().Search)
}
