package geo

import (
	"github.com/twpayne/go-polyline"

	"longhaul-fuel-planner/internal/domain"
)

// DecodePolyline decodes a standard signed-delta variable-length
// encoded coordinate sequence into an ordered list of coordinates. A
// third (elevation) value per point, if the codec produced one, is
// dropped — only latitude and longitude are kept. An empty or
// unparseable input yields an empty, non-error result, matching the
// Corridor Selector's "empty polyline -> empty result" edge case.
func DecodePolyline(encoded string) []domain.Coordinate {
	if encoded == "" {
		return nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil
	}

	points := make([]domain.Coordinate, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		points = append(points, domain.Coordinate{Lat: c[0], Lng: c[1]})
	}
	return points
}

// CumulativeMiles returns, for each point in P, the great-circle miles
// driven from P[0] to that point along the polyline. d[0] is always 0.
// Duplicate consecutive coordinates contribute zero segment distance.
func CumulativeMiles(points []domain.Coordinate) []float64 {
	d := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		d[i] = d[i-1] + DistanceMiles(points[i-1], points[i])
	}
	return d
}
