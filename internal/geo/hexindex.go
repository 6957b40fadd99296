package geo

import (
	h3 "github.com/uber/h3-go/v4"
)

// CorridorResolution is the H3 resolution used to cover a route. At
// resolution 7 a cell has an edge length of roughly 1.2 km, which
// comfortably covers the sub-mile precision a corridor buffer needs
// without inflating the candidate set the way a coarser resolution
// would. This mirrors the original implementation's choice verbatim.
const CorridorResolution = 7

// CellID returns the H3 cell identifier covering (lat, lng) at
// CorridorResolution. An invalid coordinate (e.g. out-of-range
// latitude) yields an empty string rather than an error; callers treat
// that as "this point contributed no cell" and move on, consistent
// with the Corridor Selector's per-coordinate failure semantics.
func CellID(lat, lng float64) string {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ""
	}
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), CorridorResolution)
	if err != nil {
		return ""
	}
	return cell.String()
}
