package handler

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"longhaul-fuel-planner/internal/repository"
	"longhaul-fuel-planner/internal/routing"
)

// HealthChecker reports whether the catalogue database and the route
// cache are reachable. Implemented by ServiceHealthChecker; a fake is
// used in tests.
type HealthChecker interface {
	CheckPostgres(ctx context.Context) error
	CheckRedis(ctx context.Context) error
}

// ServiceHealthChecker checks the two infrastructure dependencies the
// trip-planning pipeline needs: the fuel station catalogue and the
// route cache.
type ServiceHealthChecker struct {
	pool  *pgxpool.Pool
	cache *redis.Client
}

// NewServiceHealthChecker wires a HealthChecker to the already-
// constructed pool and cache client cmd/main.go builds at startup.
func NewServiceHealthChecker(pool *pgxpool.Pool, cache *redis.Client) *ServiceHealthChecker {
	return &ServiceHealthChecker{pool: pool, cache: cache}
}

// CheckPostgres pings the catalogue database.
func (h *ServiceHealthChecker) CheckPostgres(ctx context.Context) error {
	return repository.HealthCheck(ctx, h.pool)
}

// CheckRedis pings the route cache.
func (h *ServiceHealthChecker) CheckRedis(ctx context.Context) error {
	return routing.HealthCheck(ctx, h.cache)
}

var _ HealthChecker = (*ServiceHealthChecker)(nil)
