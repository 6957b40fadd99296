// Package service orchestrates a single trip-planning request: resolve
// the route, select corridor candidates, run the optimisation engine,
// and assemble the response the HTTP layer serialises.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"longhaul-fuel-planner/internal/corridor"
	"longhaul-fuel-planner/internal/domain"
	"longhaul-fuel-planner/internal/planner"
	"longhaul-fuel-planner/internal/routing"
)

// RoutingService resolves a start/end location pair to a driving
// route. Implemented by internal/routing.GoogleRoutingService.
type RoutingService interface {
	GetRoute(ctx context.Context, startLocation, endLocation string) (*domain.Route, error)
}

// CorridorSelector narrows the catalogue down to the stations that lie
// within a route's deviation buffer. Implemented by
// internal/corridor.Selector.
type CorridorSelector interface {
	Select(ctx context.Context, encodedPolyline string) ([]domain.FuelStation, error)
}

// OptimizationEngine solves the fuel-stop shortest-path problem.
// Implemented by internal/planner.Engine.
type OptimizationEngine interface {
	PlanTrip(routeDistance float64, stations []domain.FuelStation) ([]domain.FuelStopDecision, float64, []domain.TrackerEntry, float64)
}

// TripPlanningService wires the routing, corridor, and optimisation
// collaborators into the single PlanTrip entry point the handler
// calls.
type TripPlanningService struct {
	routing  RoutingService
	corridor CorridorSelector
	engine   OptimizationEngine
}

// NewTripPlanningService constructs a TripPlanningService from its
// three collaborators.
func NewTripPlanningService(routing RoutingService, corridor CorridorSelector, engine OptimizationEngine) *TripPlanningService {
	return &TripPlanningService{routing: routing, corridor: corridor, engine: engine}
}

// RouteSummary is the route portion of a trip plan response.
type RouteSummary struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
	Polyline        string  `json:"polyline"`
}

// FuelSummary is the aggregate fuel-spend portion of a trip plan
// response. TotalCost is the InfeasibleCost sentinel when no feasible
// stop sequence exists.
type FuelSummary struct {
	TotalCost    float64 `json:"total_cost"`
	TotalGallons float64 `json:"total_gallons"`
	TotalStops   int     `json:"total_stops"`
}

// StopView is one chosen stop as returned to the caller, denormalising
// the station fields a client needs without exposing internal ids.
type StopView struct {
	TruckstopName string  `json:"truckstop_name"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	PricePerGal   float64 `json:"price_per_gallon"`
	GallonsFilled float64 `json:"gallons_filled"`
	Cost          float64 `json:"cost"`
	MileMarker    float64 `json:"mile_marker"`
	Score         float64 `json:"score"`
}

// TripPlan is the full result of PlanTrip, ready to serialise.
type TripPlan struct {
	Route               RouteSummary          `json:"route"`
	FuelSummary         FuelSummary           `json:"fuel_summary"`
	Stops               []StopView            `json:"stops"`
	PerMileProgression  []domain.TrackerEntry `json:"per_mile_progression"`
}

// PlanTrip runs the full pipeline for one request: fetch the route,
// select corridor candidates, optimise fuel stops, assemble the
// response. An empty or whitespace-only startLocation or endLocation
// is rejected with domain.ErrMalformedInput before any collaborator is
// called.
func (s *TripPlanningService) PlanTrip(ctx context.Context, startLocation, endLocation string) (*TripPlan, error) {
	if strings.TrimSpace(startLocation) == "" || strings.TrimSpace(endLocation) == "" {
		return nil, domain.ErrMalformedInput
	}

	route, err := s.routing.GetRoute(ctx, startLocation, endLocation)
	if err != nil {
		return nil, fmt.Errorf("service: resolving route: %w", err)
	}
	if route == nil {
		return nil, domain.ErrRouteUnavailable
	}

	stations, err := s.corridor.Select(ctx, route.Polyline)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogueUnavailable, err)
	}

	log.Printf("[service] route %s -> %s: %.1f miles, %d corridor candidates", startLocation, endLocation, route.TotalDistance, len(stations))

	stops, totalCost, tracker, totalGallons := s.engine.PlanTrip(route.TotalDistance, stations)

	stopViews := make([]StopView, 0, len(stops))
	for _, stop := range stops {
		stopViews = append(stopViews, StopView{
			TruckstopName: stop.Station.Name,
			City:          stop.Station.City,
			State:         stop.Station.State,
			PricePerGal:   stop.PricePerGal,
			GallonsFilled: stop.GallonsFilled,
			Cost:          stop.Cost,
			MileMarker:    stop.MileMarker,
			Score:         stop.Score,
		})
	}

	return &TripPlan{
		Route: RouteSummary{
			DistanceMiles:   route.TotalDistance,
			DurationMinutes: route.TotalDuration,
			Polyline:        route.Polyline,
		},
		FuelSummary: FuelSummary{
			TotalCost:    totalCost,
			TotalGallons: totalGallons,
			TotalStops:   len(stopViews),
		},
		Stops:              stopViews,
		PerMileProgression: tracker,
	}, nil
}

// compile-time interface conformance checks, kept near the concrete
// types they describe so a signature drift fails the build here rather
// than at wiring time in cmd/main.go.
var (
	_ OptimizationEngine = (*planner.Engine)(nil)
	_ CorridorSelector   = (*corridor.Selector)(nil)
	_ RoutingService     = (*routing.GoogleRoutingService)(nil)
)
