package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"longhaul-fuel-planner/internal/domain"
)

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name     string
		lat1     float64
		lng1     float64
		lat2     float64
		lng2     float64
		expected float64
	}{
		{
			name:     "Los Angeles to San Francisco",
			lat1:     34.0522,
			lng1:     -118.2437,
			lat2:     37.7749,
			lng2:     -122.4194,
			expected: 347.4,
		},
		{
			name:     "same point",
			lat1:     40.0,
			lng1:     -100.0,
			lat2:     40.0,
			lng2:     -100.0,
			expected: 0,
		},
		{
			name:     "one mile apart north-south",
			lat1:     39.0,
			lng1:     -98.0,
			lat2:     39.0145,
			lng2:     -98.0,
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMiles(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.expected, got, 2.0)
		})
	}
}

func TestDistanceMiles(t *testing.T) {
	a := domain.Coordinate{Lat: 39.0, Lng: -98.0}
	b := domain.Coordinate{Lat: 39.0, Lng: -98.0}
	assert.Equal(t, 0.0, DistanceMiles(a, b))
}
