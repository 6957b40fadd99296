// Package routing provides the route collaborator: it turns a pair of
// place names or numeric "lat,lon" locations into a Route (distance,
// duration, polyline), caching results so repeated trip requests for
// the same pair skip the network round trip.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	gmaps "googlemaps.github.io/maps"

	"longhaul-fuel-planner/internal/domain"
)

// Service is the routing collaborator the trip service depends on.
type Service interface {
	GetRoute(ctx context.Context, startLocation, endLocation string) (*domain.Route, error)
}

// GoogleRoutingService implements Service against the Google Maps
// Directions and Geocoding APIs, with a Redis-backed response cache.
type GoogleRoutingService struct {
	client   *gmaps.Client
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewGoogleRoutingService builds a GoogleRoutingService. cache may be
// nil, in which case every call hits the Maps API directly.
func NewGoogleRoutingService(apiKey string, cache *redis.Client, cacheTTL time.Duration) (*GoogleRoutingService, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("routing: create maps client: %w", err)
	}

	return &GoogleRoutingService{client: client, cache: cache, cacheTTL: cacheTTL}, nil
}

// cachedRoute is the JSON shape stored in Redis, independent of
// domain.Route's own json tags so the cache format can evolve without
// touching the wire response.
type cachedRoute struct {
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	TotalDistance float64 `json:"total_distance_miles"`
	TotalDuration float64 `json:"total_duration_minutes"`
	Polyline      string  `json:"polyline"`
}

func cacheKey(startLocation, endLocation string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	}
	return fmt.Sprintf("route:%s:%s", norm(startLocation), norm(endLocation))
}

// GetRoute resolves startLocation and endLocation (place names or
// numeric "lat,lon" pairs) to a single best driving route. A cache hit
// skips geocoding and directions entirely. If the Directions API
// returns no routes, GetRoute returns (nil, nil) — the caller is
// responsible for turning that into the RouteUnavailable error, since
// this package has no opinion on error taxonomy.
func (s *GoogleRoutingService) GetRoute(ctx context.Context, startLocation, endLocation string) (*domain.Route, error) {
	key := cacheKey(startLocation, endLocation)

	if s.cache != nil {
		if cached, err := s.readCache(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	startCoord, err := s.resolveLocation(ctx, startLocation)
	if err != nil {
		return nil, fmt.Errorf("routing: resolve start location %q: %w", startLocation, err)
	}
	endCoord, err := s.resolveLocation(ctx, endLocation)
	if err != nil {
		return nil, fmt.Errorf("routing: resolve end location %q: %w", endLocation, err)
	}

	req := &gmaps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", startCoord.Lat, startCoord.Lng),
		Destination: fmt.Sprintf("%f,%f", endCoord.Lat, endCoord.Lng),
		Mode:        gmaps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("routing: fetch directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, nil
	}

	best := routes[0]
	var distanceMeters, durationSeconds int
	var polylinePoints string
	for _, leg := range best.Legs {
		distanceMeters += leg.Distance.Meters
		durationSeconds += int(leg.Duration.Seconds())
	}
	polylinePoints = best.OverviewPolyline.Points

	route := &domain.Route{
		StartLocation: startLocation,
		EndLocation:   endLocation,
		TotalDistance: round2(metersToMiles(float64(distanceMeters))),
		TotalDuration: round2(float64(durationSeconds) / 60.0),
		Polyline:      polylinePoints,
	}

	if s.cache != nil {
		s.writeCache(ctx, key, route)
	}

	return route, nil
}

// resolveLocation parses "lat,lon" numeric pairs directly, skipping
// geocoding; anything else is sent to the Geocoding API.
func (s *GoogleRoutingService) resolveLocation(ctx context.Context, location string) (domain.Coordinate, error) {
	if coord, ok := parseNumericCoordinate(location); ok {
		return coord, nil
	}

	req := &gmaps.GeocodingRequest{Address: location}
	results, err := s.client.Geocode(ctx, req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("no geocoding results for %q", location)
	}

	loc := results[0].Geometry.Location
	return domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// parseNumericCoordinate recognises a "lat,lon" pair where both parts
// parse as floats. Anything else, including a place name that happens
// to contain a comma, is left to the geocoder.
func parseNumericCoordinate(location string) (domain.Coordinate, bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return domain.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinate{}, false
	}

	return domain.Coordinate{Lat: lat, Lng: lng}, true
}

func (s *GoogleRoutingService) readCache(ctx context.Context, key string) (*domain.Route, error) {
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var cached cachedRoute
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}

	return &domain.Route{
		StartLocation: cached.StartLocation,
		EndLocation:   cached.EndLocation,
		TotalDistance: cached.TotalDistance,
		TotalDuration: cached.TotalDuration,
		Polyline:      cached.Polyline,
	}, nil
}

func (s *GoogleRoutingService) writeCache(ctx context.Context, key string, route *domain.Route) {
	payload := cachedRoute{
		StartLocation: route.StartLocation,
		EndLocation:   route.EndLocation,
		TotalDistance: route.TotalDistance,
		TotalDuration: route.TotalDuration,
		Polyline:      route.Polyline,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}

	// Best-effort: a cache write failure should never fail the request
	// that already has a good route in hand.
	_ = s.cache.Set(ctx, key, raw, s.cacheTTL).Err()
}

// HealthCheck pings the Redis cache and returns nil if it is reachable.
func HealthCheck(ctx context.Context, cache *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return cache.Ping(pingCtx).Err()
}

func metersToMiles(m float64) float64 {
	return m / 1609.34
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
