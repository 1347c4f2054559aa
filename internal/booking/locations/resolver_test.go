// internal/booking/locations/resolver_test.go
package locations

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chrisns/matrixbookingmcp-sub000/internal/common/errors"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/common/logger"
	"github.com/chrisns/matrixbookingmcp-sub000/internal/matrix"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeCatalog struct {
	subtrees map[int64][]matrix.Location
	known    map[int64]bool

	getLocationCalls []int64
	hierarchyCalls   []int64
}

func (f *fakeCatalog) GetLocation(_ context.Context, id int64) (*matrix.Location, error) {
	f.getLocationCalls = append(f.getLocationCalls, id)
	if f.known[id] {
		return &matrix.Location{ID: id, Name: "Known"}, nil
	}
	return nil, apperrors.NewLocationNotFoundError(strconv.FormatInt(id, 10))
}

func (f *fakeCatalog) GetLocationHierarchy(_ context.Context, req *matrix.HierarchyRequest) (*matrix.HierarchyResponse, error) {
	f.hierarchyCalls = append(f.hierarchyCalls, req.ParentID)
	return &matrix.HierarchyResponse{Locations: f.subtrees[req.ParentID]}, nil
}

func newTestResolver(t *testing.T, catalog *fakeCatalog, preferred string) *Resolver {
	t.Helper()
	return NewResolver(catalog, preferred, logger.NewTestLogger(t))
}

const preferredBuilding = int64(200001)

func officeCatalog() *fakeCatalog {
	return &fakeCatalog{
		known: map[int64]bool{100001: true, 200001: true},
		subtrees: map[int64][]matrix.Location{
			preferredBuilding: {
				{ID: 300001, Name: "Room 101"},
				{ID: 300002, Name: "Room 102"},
				{ID: 300003, Name: "Main Auditorium"},
			},
			0: {
				{ID: 300010, Name: "Room 101"}, // another building, same number
				{ID: 300001, Name: "Room 101"},
				{ID: 300011, Name: "Boardroom"},
				{ID: 300012, Name: "Quiet Pod 7"},
			},
		},
	}
}

// ==========================
// Direct ID Resolution Tests
// ==========================

func TestResolve_NumericID(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, "")

	id, err := resolver.Resolve(context.Background(), "100001")
	require.NoError(t, err)
	assert.Equal(t, int64(100001), id)
	assert.Empty(t, catalog.hierarchyCalls)
}

func TestResolve_NumericID_NotFoundHasNoNameFallback(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, strconv.FormatInt(preferredBuilding, 10))

	_, err := resolver.Resolve(context.Background(), "999999")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, apperrors.AsStandard(err).Message, "999999")
	assert.Empty(t, catalog.hierarchyCalls)
}

func TestResolve_SmallNumberIsARoomNumber(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, strconv.FormatInt(preferredBuilding, 10))

	id, err := resolver.Resolve(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, int64(300001), id)
	assert.Empty(t, catalog.getLocationCalls)
}

// ==========================
// Name Resolution Tests
// ==========================

func TestResolve_PreferredSubtreeShortCircuits(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, strconv.FormatInt(preferredBuilding, 10))

	id, err := resolver.Resolve(context.Background(), "Room 101")
	require.NoError(t, err)
	assert.Equal(t, int64(300001), id)
	assert.Equal(t, []int64{preferredBuilding}, catalog.hierarchyCalls)
}

func TestResolve_FallsBackToGlobalSearch(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, strconv.FormatInt(preferredBuilding, 10))

	id, err := resolver.Resolve(context.Background(), "Boardroom")
	require.NoError(t, err)
	assert.Equal(t, int64(300011), id)
	assert.Equal(t, []int64{preferredBuilding, 0}, catalog.hierarchyCalls)
}

func TestResolve_NoPreferredGoesStraightToGlobal(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, "")

	id, err := resolver.Resolve(context.Background(), "Boardroom")
	require.NoError(t, err)
	assert.Equal(t, int64(300011), id)
	assert.Equal(t, []int64{0}, catalog.hierarchyCalls)
}

func TestResolve_ExactBeatsPartialInSameSubtree(t *testing.T) {
	catalog := &fakeCatalog{
		subtrees: map[int64][]matrix.Location{
			0: {
				{ID: 1, Name: "Boardroom Annex"},
				{ID: 2, Name: "Boardroom"},
			},
		},
	}
	resolver := newTestResolver(t, catalog, "")

	id, err := resolver.Resolve(context.Background(), "boardroom")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestResolve_PartialMatch(t *testing.T) {
	catalog := officeCatalog()
	resolver := newTestResolver(t, catalog, strconv.FormatInt(preferredBuilding, 10))

	id, err := resolver.Resolve(context.Background(), "auditorium")
	require.NoError(t, err)
	assert.Equal(t, int64(300003), id)
}

func TestResolve_RoomNumberDoesNotMatchLongerRuns(t *testing.T) {
	catalog := &fakeCatalog{
		subtrees: map[int64][]matrix.Location{
			0: {
				{ID: 1, Name: "Room 1012"},
				{ID: 2, Name: "Pod 101 East"},
			},
		},
	}
	resolver := newTestResolver(t, catalog, "")

	id, err := resolver.Resolve(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

// ==========================
// Failure Mode Tests
// ==========================

func TestResolve_EmptyTerm(t *testing.T) {
	resolver := newTestResolver(t, officeCatalog(), "")

	for _, term := range []string{"", "   "} {
		_, err := resolver.Resolve(context.Background(), term)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestResolve_NotFoundNamesTheTerm(t *testing.T) {
	resolver := newTestResolver(t, officeCatalog(), strconv.FormatInt(preferredBuilding, 10))

	_, err := resolver.Resolve(context.Background(), "The Moon")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, apperrors.AsStandard(err).Message, "The Moon")
}
