// Package corridor implements the Corridor Selector: given a route
// polyline and a deviation buffer, it returns the catalogue stations
// that lie within the buffer of the route, each annotated with how far
// off-route it sits and where along the route it is closest.
package corridor

import (
	"context"
	"fmt"

	"longhaul-fuel-planner/internal/domain"
	"longhaul-fuel-planner/internal/geo"
)

// earlyExitMiles is the distance below which a candidate is considered
// "on the route" and the per-coordinate scan for that candidate stops
// early rather than continuing to look for an even closer point.
const earlyExitMiles = 0.1

// StationRepository is the catalogue read collaborator: given a set of
// hex cell ids it returns every station indexed under any of them. The
// Corridor Selector never talks to the catalogue directly beyond this
// one call.
type StationRepository interface {
	StationsByCells(ctx context.Context, cells []string) ([]domain.FuelStation, error)
}

// Selector runs the Corridor Selector against a StationRepository.
type Selector struct {
	repo       StationRepository
	bufferMi   float64
}

// NewSelector creates a Selector with a fixed deviation buffer. The
// buffer is the exact-distance cutoff applied after the prefilter; the
// hex cell cover requested from the repository does not depend on it.
func NewSelector(repo StationRepository, bufferMi float64) *Selector {
	return &Selector{repo: repo, bufferMi: bufferMi}
}

// Select decodes encodedPolyline, takes the hex cell of each decoded
// point, prefilters the catalogue by that cell set, and
// returns the subset of candidates that truly lie within bufferMi of
// the route, each annotated with DeviationDistance and MileMarker.
//
// An empty or unparseable polyline yields an empty result. A
// repository failure is propagated, wrapped with %w; it is the only
// error this method can return.
func (s *Selector) Select(ctx context.Context, encodedPolyline string) ([]domain.FuelStation, error) {
	points := geo.DecodePolyline(encodedPolyline)
	if len(points) == 0 {
		return nil, nil
	}

	cumulative := geo.CumulativeMiles(points)

	cells := corridorCells(points)
	if len(cells) == 0 {
		return nil, nil
	}

	candidates, err := s.repo.StationsByCells(ctx, cells)
	if err != nil {
		return nil, fmt.Errorf("corridor: fetching candidate stations: %w", err)
	}

	selected := make([]domain.FuelStation, 0, len(candidates))
	for _, candidate := range candidates {
		minDist, atIdx, ok := nearestPointOnRoute(candidate, points)
		if !ok {
			continue
		}
		if minDist > s.bufferMi {
			continue
		}

		annotated := candidate
		annotated.Deviation = minDist
		annotated.MileMarker = cumulative[atIdx]
		selected = append(selected, annotated)
	}

	return selected, nil
}

// nearestPointOnRoute scans every decoded route point P and returns the
// minimum haversine distance from the station to any point, along with
// the index of the closest one. The scan exits early once a point
// within earlyExitMiles is found, since no closer match matters for
// the buffer decision.
func nearestPointOnRoute(station domain.FuelStation, points []domain.Coordinate) (minDist float64, atIdx int, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}

	stationCoord := domain.Coordinate{Lat: station.Lat, Lng: station.Lng}
	minDist = geo.DistanceMiles(stationCoord, points[0])
	atIdx = 0

	for i := 1; i < len(points); i++ {
		d := geo.DistanceMiles(stationCoord, points[i])
		if d < minDist {
			minDist = d
			atIdx = i
		}
		if minDist < earlyExitMiles {
			break
		}
	}

	return minDist, atIdx, true
}

// corridorCells returns the deduplicated set of hex cell ids covering
// every decoded route point. This is a coarse cover, not an exact
// buffer geometry: only the cells that contain a route point are
// included, so a station within the buffer but in a neighbouring cell
// is never fetched and never reaches the haversine filter in Select.
func corridorCells(points []domain.Coordinate) []string {
	seen := make(map[string]struct{}, len(points))
	cells := make([]string, 0, len(points))

	for _, p := range points {
		id := geo.CellID(p.Lat, p.Lng)
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		cells = append(cells, id)
	}

	return cells
}
