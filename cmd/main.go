package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"longhaul-fuel-planner/internal/config"
	"longhaul-fuel-planner/internal/corridor"
	"longhaul-fuel-planner/internal/handler"
	"longhaul-fuel-planner/internal/planner"
	"longhaul-fuel-planner/internal/repository"
	"longhaul-fuel-planner/internal/routing"
	"longhaul-fuel-planner/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := repository.NewPostgresPool(ctx, cfg.Postgres.DSN(), cfg.Postgres.MaxConns, cfg.Postgres.MinConns)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unreachable at startup: %v", err)
	}

	fuelRepo := repository.NewPostgresFuelRepository(pool)
	corridorSelector := corridor.NewSelector(fuelRepo, cfg.Planner.CorridorBufferMi)

	routingService, err := routing.NewGoogleRoutingService(cfg.Maps.APIKey, redisClient, cfg.Maps.CacheTTL)
	if err != nil {
		log.Fatalf("routing: %v", err)
	}

	engine := planner.NewEngine(planner.Config{
		VehicleRange:          cfg.Planner.VehicleRangeMiles,
		MPG:                   cfg.Planner.MPG,
		PriceWeight:           cfg.Planner.PriceWeight,
		DeviationWeight:       cfg.Planner.DeviationWeight,
		DetourPenalty:         cfg.Planner.DetourPenalty,
		StartPriceBufferMiles: cfg.Planner.StartPriceBufferMi,
	})

	tripService := service.NewTripPlanningService(routingService, corridorSelector, engine)
	healthChecker := handler.NewServiceHealthChecker(pool, redisClient)
	tripHandler := handler.NewTripHandler(tripService, healthChecker)

	router := handler.NewRouter(tripHandler)

	log.Printf("Starting server on %s", cfg.Server.ServerAddr())
	if err := router.Run(cfg.Server.ServerAddr()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
