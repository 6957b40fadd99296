package corridor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longhaul-fuel-planner/internal/domain"
)

// fakeRepository returns a fixed set of stations regardless of the
// requested cells, which is enough to exercise the exact-distance
// filtering Select performs after the prefilter.
type fakeRepository struct {
	stations []domain.FuelStation
	err      error
}

func (f *fakeRepository) StationsByCells(ctx context.Context, cells []string) ([]domain.FuelStation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stations, nil
}

// straightLinePolyline encodes a short straight line running east
// along a line of latitude: (38.0, -122.0), (38.0, -121.0), (38.0, -120.0).
var straightLinePolyline = encodeTestPolyline([]domain.Coordinate{
	{Lat: 38.0, Lng: -122.0},
	{Lat: 38.0, Lng: -121.0},
	{Lat: 38.0, Lng: -120.0},
})

// encodeTestPolyline implements the same signed-delta variable-length
// encoding the production decoder expects, so tests can build fixtures
// without depending on a hardcoded encoded literal.
func encodeTestPolyline(points []domain.Coordinate) string {
	var out []byte
	var prevLat, prevLng int64

	for _, p := range points {
		lat := round1e5(p.Lat)
		lng := round1e5(p.Lng)
		out = append(out, encodeSignedValue(lat-prevLat)...)
		out = append(out, encodeSignedValue(lng-prevLng)...)
		prevLat, prevLng = lat, lng
	}

	return string(out)
}

func round1e5(v float64) int64 {
	if v >= 0 {
		return int64(v*1e5 + 0.5)
	}
	return int64(v*1e5 - 0.5)
}

func encodeSignedValue(v int64) []byte {
	shifted := v << 1
	if v < 0 {
		shifted = ^shifted
	}
	var out []byte
	for shifted >= 0x20 {
		out = append(out, byte((0x20|(shifted&0x1f))+63))
		shifted >>= 5
	}
	out = append(out, byte(shifted+63))
	return out
}

func TestSelect_EmptyPolylineYieldsEmptyResult(t *testing.T) {
	repo := &fakeRepository{stations: []domain.FuelStation{{ID: 1, Lat: 38.0, Lng: -121.0}}}
	sel := NewSelector(repo, 10)

	got, err := sel.Select(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelect_RepositoryFailurePropagates(t *testing.T) {
	repo := &fakeRepository{err: errors.New("catalogue down")}
	sel := NewSelector(repo, 10)

	_, err := sel.Select(context.Background(), straightLinePolyline)

	require.Error(t, err)
}

func TestSelect_ThreeStationsAtVaryingOffsets(t *testing.T) {
	// One station right on the route, one a few miles off but within
	// the buffer, one far enough off to be excluded.
	onRoute := domain.FuelStation{ID: 1, Name: "on-route", Lat: 38.0, Lng: -121.0}
	nearRoute := domain.FuelStation{ID: 2, Name: "near-route", Lat: 38.05, Lng: -121.0}
	farFromRoute := domain.FuelStation{ID: 3, Name: "far-from-route", Lat: 39.5, Lng: -121.0}

	repo := &fakeRepository{stations: []domain.FuelStation{onRoute, nearRoute, farFromRoute}}
	sel := NewSelector(repo, 10)

	got, err := sel.Select(context.Background(), straightLinePolyline)

	require.NoError(t, err)

	byID := make(map[int]domain.FuelStation, len(got))
	for _, s := range got {
		byID[s.ID] = s
	}

	_, onRouteIncluded := byID[onRoute.ID]
	_, nearRouteIncluded := byID[nearRoute.ID]
	_, farIncluded := byID[farFromRoute.ID]

	assert.True(t, onRouteIncluded)
	assert.True(t, nearRouteIncluded)
	assert.False(t, farIncluded)

	assert.Less(t, byID[onRoute.ID].Deviation, byID[nearRoute.ID].Deviation)
	assert.GreaterOrEqual(t, byID[onRoute.ID].MileMarker, 0.0)
}

func TestSelect_IsIdempotent(t *testing.T) {
	stations := []domain.FuelStation{
		{ID: 1, Lat: 38.0, Lng: -121.0},
		{ID: 2, Lat: 38.02, Lng: -121.5},
	}
	repo := &fakeRepository{stations: stations}
	sel := NewSelector(repo, 10)

	first, err := sel.Select(context.Background(), straightLinePolyline)
	require.NoError(t, err)

	second, err := sel.Select(context.Background(), straightLinePolyline)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.InDelta(t, first[i].Deviation, second[i].Deviation, 1e-9)
		assert.InDelta(t, first[i].MileMarker, second[i].MileMarker, 1e-9)
	}
}

func TestSelect_DuplicateCoordinatesContributeZeroDistance(t *testing.T) {
	// A degenerate polyline with a repeated point still produces a
	// usable (non-decreasing) cumulative mileage table and does not
	// panic or misattribute a mile marker.
	repeatedPoint := encodeTestPolyline([]domain.Coordinate{
		{Lat: 38.0, Lng: -121.0},
		{Lat: 38.0, Lng: -121.0},
		{Lat: 38.0, Lng: -120.0},
	})
	repo := &fakeRepository{stations: []domain.FuelStation{{ID: 1, Lat: 38.0, Lng: -121.0}}}
	sel := NewSelector(repo, 50)

	got, err := sel.Select(context.Background(), repeatedPoint)

	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.GreaterOrEqual(t, got[0].MileMarker, 0.0)
}
