package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longhaul-fuel-planner/internal/corridor"
	"longhaul-fuel-planner/internal/domain"
	"longhaul-fuel-planner/internal/handler"
	"longhaul-fuel-planner/internal/planner"
	"longhaul-fuel-planner/internal/service"
)

// stubRouting stands in for the Google Maps collaborator so the
// pipeline can be exercised end to end without network access.
type stubRouting struct {
	route *domain.Route
}

func (s *stubRouting) GetRoute(ctx context.Context, startLocation, endLocation string) (*domain.Route, error) {
	return s.route, nil
}

// stubFuelRepository stands in for the catalogue so the Corridor
// Selector can be exercised without a database.
type stubFuelRepository struct {
	stations []domain.FuelStation
}

func (s *stubFuelRepository) StationsByCells(ctx context.Context, cells []string) ([]domain.FuelStation, error) {
	return s.stations, nil
}

// stubHealthChecker reports healthy dependencies without a real
// Postgres or Redis connection.
type stubHealthChecker struct{}

func (s *stubHealthChecker) CheckPostgres(ctx context.Context) error { return nil }
func (s *stubHealthChecker) CheckRedis(ctx context.Context) error    { return nil }

// encodePolyline implements the standard signed-delta variable-length
// polyline codec the production decoder expects, so this fixture does
// not depend on a hand-verified encoded literal.
func encodePolyline(points []domain.Coordinate) string {
	var out []byte
	var prevLat, prevLng int64

	round := func(v float64) int64 {
		if v >= 0 {
			return int64(v*1e5 + 0.5)
		}
		return int64(v*1e5 - 0.5)
	}

	encodeValue := func(v int64) []byte {
		shifted := v << 1
		if v < 0 {
			shifted = ^shifted
		}
		var b []byte
		for shifted >= 0x20 {
			b = append(b, byte((0x20|(shifted&0x1f))+63))
			shifted >>= 5
		}
		return append(b, byte(shifted+63))
	}

	for _, p := range points {
		lat, lng := round(p.Lat), round(p.Lng)
		out = append(out, encodeValue(lat-prevLat)...)
		out = append(out, encodeValue(lng-prevLng)...)
		prevLat, prevLng = lat, lng
	}

	return string(out)
}

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	stations := []domain.FuelStation{
		{ID: 1, Name: "Flying J", City: "Rawlins", State: "WY", Price: 3.10, Lat: 41.79, Lng: -107.24},
		{ID: 2, Name: "Loves", City: "Rock Springs", State: "WY", Price: 3.25, Lat: 41.59, Lng: -109.20},
		{ID: 3, Name: "Pilot", City: "Evanston", State: "WY", Price: 2.95, Lat: 41.27, Lng: -110.96},
	}

	// A coarse polyline following I-80 west from Denver toward Salt
	// Lake City, passing near each stub station above.
	routePolyline := encodePolyline([]domain.Coordinate{
		{Lat: 39.74, Lng: -104.99},
		{Lat: 41.79, Lng: -107.24},
		{Lat: 41.59, Lng: -109.20},
		{Lat: 41.27, Lng: -110.96},
		{Lat: 40.76, Lng: -111.89},
	})

	route := &domain.Route{
		StartLocation: "Denver, CO",
		EndLocation:   "Salt Lake City, UT",
		TotalDistance: 520,
		TotalDuration: 470,
		Polyline:      routePolyline,
	}

	routingSvc := &stubRouting{route: route}
	corridorSel := corridor.NewSelector(&stubFuelRepository{stations: stations}, 50)
	engine := planner.NewEngine(planner.DefaultConfig())

	tripService := service.NewTripPlanningService(routingSvc, corridorSel, engine)
	tripHandler := handler.NewTripHandler(tripService, &stubHealthChecker{})

	gin.SetMode(gin.TestMode)
	return handler.NewRouter(tripHandler)
}

func TestTripPlanningIntegration(t *testing.T) {
	router := buildTestRouter(t)

	t.Run("health check returns OK", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
	})

	t.Run("plans a trip end to end", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{
			"start_location": "Denver, CO",
			"end_location":   "Salt Lake City, UT",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/plan", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var plan service.TripPlan
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

		assert.Equal(t, 520.0, plan.Route.DistanceMiles)
		assert.Equal(t, len(plan.Stops), plan.FuelSummary.TotalStops)
		assert.GreaterOrEqual(t, plan.FuelSummary.TotalGallons, 0.0)
	})

	t.Run("rejects a request missing end_location", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{"start_location": "Denver, CO"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/plan", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
