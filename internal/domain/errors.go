package domain

import "errors"

// Sentinel errors surfaced at the request boundary. See spec §7 for the
// full error-kind taxonomy; InfeasibleTrip is deliberately absent from
// this list because it is never propagated as a Go error — it is a
// normal sentinel *result* (total_cost == -1), produced by
// planner.Engine.PlanTrip without a non-nil error.
var (
	// ErrRouteUnavailable means the routing collaborator returned no
	// route for the requested start/end pair.
	ErrRouteUnavailable = errors.New("route unavailable")

	// ErrCatalogueUnavailable means the station catalogue query failed.
	ErrCatalogueUnavailable = errors.New("fuel station catalogue unavailable")

	// ErrMalformedInput means the request is missing a required field
	// (an empty start or end location) and was rejected before the
	// core ran.
	ErrMalformedInput = errors.New("malformed trip request")
)
