// Package handler exposes the trip planning service over HTTP using
// Gin.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"longhaul-fuel-planner/internal/domain"
	"longhaul-fuel-planner/internal/service"
)

// TripPlanner is the subset of service.TripPlanningService the handler
// depends on.
type TripPlanner interface {
	PlanTrip(ctx context.Context, startLocation, endLocation string) (*service.TripPlan, error)
}

// TripHandler serves the trip-planning HTTP surface.
type TripHandler struct {
	planner TripPlanner
	health  HealthChecker
}

// NewTripHandler wires a handler to its planning service and its
// dependency health checks.
func NewTripHandler(planner TripPlanner, health HealthChecker) *TripHandler {
	return &TripHandler{planner: planner, health: health}
}

// TripPlanRequest is the request body for POST /api/v1/trips/plan.
type TripPlanRequest struct {
	StartLocation string `json:"start_location" binding:"required"`
	EndLocation   string `json:"end_location" binding:"required"`
}

// ErrorResponse is the JSON shape for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PlanTrip handles POST /api/v1/trips/plan.
func (h *TripHandler) PlanTrip(c *gin.Context) {
	var req TripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	plan, err := h.planner.PlanTrip(c.Request.Context(), req.StartLocation, req.EndLocation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedInput):
			writeError(c, http.StatusBadRequest, "malformed_input", err.Error())
		case errors.Is(err, domain.ErrRouteUnavailable):
			writeError(c, http.StatusBadGateway, "route_unavailable", err.Error())
		case errors.Is(err, domain.ErrCatalogueUnavailable):
			writeError(c, http.StatusBadGateway, "catalogue_unavailable", err.Error())
		default:
			log.Printf("[handler] plan_trip error: %v", err)
			writeError(c, http.StatusInternalServerError, "internal_error", "trip planning failed")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HealthResponse is the JSON shape for GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health: liveness plus a Postgres and Redis
// ping. Status is "healthy" (200) when both respond and "degraded"
// (503) otherwise.
func (h *TripHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "longhaul-fuel-planner",
		Services:  make(map[string]string),
	}

	ctx := c.Request.Context()

	if err := h.health.CheckPostgres(ctx); err != nil {
		resp.Status = "degraded"
		resp.Services["postgres"] = "unhealthy: " + err.Error()
	} else {
		resp.Services["postgres"] = "healthy"
	}

	if err := h.health.CheckRedis(ctx); err != nil {
		resp.Status = "degraded"
		resp.Services["redis"] = "unhealthy: " + err.Error()
	} else {
		resp.Services["redis"] = "healthy"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: code, Message: message})
}

var _ TripPlanner = (*service.TripPlanningService)(nil)
