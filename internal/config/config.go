// Package config loads runtime configuration for the fuel-stop planner
// from environment variables (and an optional .env file), with
// defaults matching spec.md wherever the spec names one.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Maps     MapsConfig
	Planner  PlannerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         int           `mapstructure:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

// PostgresConfig holds the fuel station catalogue's connection
// settings.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS"`
}

// RedisConfig holds the route-response cache's connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PoolSize int    `mapstructure:"REDIS_POOL_SIZE"`
}

// MapsConfig holds the routing/geocoding collaborator's settings.
type MapsConfig struct {
	APIKey    string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	CacheTTL  time.Duration `mapstructure:"ROUTE_CACHE_TTL"`
}

// PlannerConfig carries the Optimisation Engine's tunables (spec §4.2)
// and the Corridor Selector's buffer, so they are operator-configurable
// without a code change. Defaults match spec.md exactly.
type PlannerConfig struct {
	VehicleRangeMiles float64 `mapstructure:"PLANNER_VEHICLE_RANGE_MILES"`
	MPG               float64 `mapstructure:"PLANNER_MPG"`
	PriceWeight       float64 `mapstructure:"PLANNER_PRICE_WEIGHT"`
	DeviationWeight   float64 `mapstructure:"PLANNER_DEVIATION_WEIGHT"`
	DetourPenalty     float64 `mapstructure:"PLANNER_DETOUR_PENALTY"`
	CorridorBufferMi  float64 `mapstructure:"PLANNER_CORRIDOR_BUFFER_MILES"`
	StartPriceBufferMi float64 `mapstructure:"PLANNER_START_PRICE_BUFFER_MILES"`
}

// DSN returns the PostgreSQL connection string for the pgx pool.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerAddr returns the HTTP listen address in host:port format.
func (s *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables and an optional
// .env file, falling back to the defaults below.
func Load() (*Config, error) {
	// Best-effort: populate process env vars from a .env file in local
	// development. In a containerised deployment no file is present and
	// env vars are injected directly, so a missing file is not an error.
	_ = godotenv.Load()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// ── Defaults ────────────────────────────────────────
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "5s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "fuelplanner")
	viper.SetDefault("POSTGRES_PASSWORD", "fuelplanner_secret")
	viper.SetDefault("POSTGRES_DB", "fuelplanner_db")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_CONNS", 25)
	viper.SetDefault("POSTGRES_MIN_CONNS", 5)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 50)

	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("ROUTE_CACHE_TTL", "24h")

	viper.SetDefault("PLANNER_VEHICLE_RANGE_MILES", 500.0)
	viper.SetDefault("PLANNER_MPG", 10.0)
	viper.SetDefault("PLANNER_PRICE_WEIGHT", 10.0)
	viper.SetDefault("PLANNER_DEVIATION_WEIGHT", 2.0)
	viper.SetDefault("PLANNER_DETOUR_PENALTY", 5.0)
	viper.SetDefault("PLANNER_CORRIDOR_BUFFER_MILES", 10.0)
	viper.SetDefault("PLANNER_START_PRICE_BUFFER_MILES", 15.0)

	// Try to read a .env file; in a containerised deployment env vars
	// are injected directly and no file is present.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
			MinConns: viper.GetInt32("POSTGRES_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		Maps: MapsConfig{
			APIKey:   viper.GetString("GOOGLE_MAPS_API_KEY"),
			CacheTTL: viper.GetDuration("ROUTE_CACHE_TTL"),
		},
		Planner: PlannerConfig{
			VehicleRangeMiles:  viper.GetFloat64("PLANNER_VEHICLE_RANGE_MILES"),
			MPG:                viper.GetFloat64("PLANNER_MPG"),
			PriceWeight:        viper.GetFloat64("PLANNER_PRICE_WEIGHT"),
			DeviationWeight:    viper.GetFloat64("PLANNER_DEVIATION_WEIGHT"),
			DetourPenalty:      viper.GetFloat64("PLANNER_DETOUR_PENALTY"),
			CorridorBufferMi:   viper.GetFloat64("PLANNER_CORRIDOR_BUFFER_MILES"),
			StartPriceBufferMi: viper.GetFloat64("PLANNER_START_PRICE_BUFFER_MILES"),
		},
	}

	if cfg.Maps.APIKey == "" {
		return nil, fmt.Errorf("config: GOOGLE_MAPS_API_KEY is required")
	}

	return cfg, nil
}
