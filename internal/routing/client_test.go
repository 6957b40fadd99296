package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumericCoordinate_NumericPairRecognised(t *testing.T) {
	coord, ok := parseNumericCoordinate("40.7128,-74.0060")

	assert.True(t, ok)
	assert.InDelta(t, 40.7128, coord.Lat, 1e-9)
	assert.InDelta(t, -74.0060, coord.Lng, 1e-9)
}

func TestParseNumericCoordinate_WithSpacesAroundComma(t *testing.T) {
	coord, ok := parseNumericCoordinate("40.7128, -74.0060")

	assert.True(t, ok)
	assert.InDelta(t, -74.0060, coord.Lng, 1e-9)
}

func TestParseNumericCoordinate_PlaceNameRejected(t *testing.T) {
	_, ok := parseNumericCoordinate("Denver, CO")

	assert.False(t, ok)
}

func TestParseNumericCoordinate_SingleValueRejected(t *testing.T) {
	_, ok := parseNumericCoordinate("40.7128")

	assert.False(t, ok)
}

func TestCacheKey_NormalisesCaseAndSpaces(t *testing.T) {
	a := cacheKey("Denver, CO", "Salt Lake City, UT")
	b := cacheKey("denver, co", "salt lake city, ut")

	assert.Equal(t, a, b)
}

func TestCacheKey_DistinctForDifferentPairs(t *testing.T) {
	a := cacheKey("Denver, CO", "Salt Lake City, UT")
	b := cacheKey("Salt Lake City, UT", "Denver, CO")

	assert.NotEqual(t, a, b)
}

func TestRound2_RoundsToTwoDecimals(t *testing.T) {
	assert.Equal(t, 12.35, round2(12.345))
	assert.Equal(t, 0.0, round2(0))
}
