// Package repository provides the fuel station catalogue's persistence
// adapter. Bulk ingestion into the catalogue is a separate loader
// process and is out of scope here; this package provides the read
// path the Corridor Selector uses and the BulkInsert upsert that a
// loader can call.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"longhaul-fuel-planner/internal/domain"
)

// FuelRepository is the catalogue read/write surface the rest of the
// service depends on.
type FuelRepository interface {
	// StationsByCells returns every catalogued station indexed under
	// any of the given hex cell ids. An empty cells slice yields an
	// empty result without a round trip.
	StationsByCells(ctx context.Context, cells []string) ([]domain.FuelStation, error)

	// BulkInsert upserts a batch of stations, keyed on the catalogue's
	// (name, address, city, state) uniqueness constraint. It exists so
	// this interface can be satisfied by the out-of-scope bulk loader
	// without that loader depending on repository internals.
	BulkInsert(ctx context.Context, stations []domain.FuelStation) error
}

// PostgresFuelRepository implements FuelRepository against the
// fuel_stations table.
type PostgresFuelRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFuelRepository wraps an already-connected pool.
func NewPostgresFuelRepository(pool *pgxpool.Pool) *PostgresFuelRepository {
	return &PostgresFuelRepository{pool: pool}
}

// NewPostgresPool opens a connection pool to the catalogue database.
func NewPostgresPool(ctx context.Context, dsn string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: parse postgres config: %w", err)
	}

	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.MaxConnLifetime = 1 * time.Hour
	poolCfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("repository: create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repository: ping postgres: %w", err)
	}

	return pool, nil
}

// HealthCheck reports whether the catalogue database is reachable.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return pool.Ping(pingCtx)
}

const stationsByCellsQuery = `
	SELECT id, truckstop_name, address, city, state, rack_id,
	       retail_price, latitude, longitude, h3_index
	FROM fuel_stations
	WHERE h3_index = ANY($1)
`

// StationsByCells fetches every station whose h3_index matches one of
// the requested cells. This is the catalogue's only read path that the
// Corridor Selector depends on; it returns the whole coarse candidate
// set, deferring exact distance filtering to the caller.
func (r *PostgresFuelRepository) StationsByCells(ctx context.Context, cells []string) ([]domain.FuelStation, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, stationsByCellsQuery, cells)
	if err != nil {
		return nil, fmt.Errorf("repository: query stations by cells: %w", err)
	}
	defer rows.Close()

	var stations []domain.FuelStation
	for rows.Next() {
		var s domain.FuelStation
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.RackID,
			&s.Price, &s.Lat, &s.Lng, &s.HexCell,
		); err != nil {
			return nil, fmt.Errorf("repository: scan station row: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: iterate station rows: %w", err)
	}

	return stations, nil
}

const bulkInsertStatement = `
	INSERT INTO fuel_stations
		(truckstop_name, address, city, state, rack_id, retail_price, latitude, longitude, h3_index)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (truckstop_name, address, city, state)
	DO UPDATE SET
		rack_id = EXCLUDED.rack_id,
		retail_price = EXCLUDED.retail_price,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		h3_index = EXCLUDED.h3_index
`

// BulkInsert upserts stations one statement at a time inside a single
// transaction. The bulk loader that calls this in volume is out of
// scope; this method only needs to exist and be correct.
func (r *PostgresFuelRepository) BulkInsert(ctx context.Context, stations []domain.FuelStation) error {
	if len(stations) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: begin bulk insert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range stations {
		_, err := tx.Exec(ctx, bulkInsertStatement,
			s.Name, s.Address, s.City, s.State, s.RackID, s.Price, s.Lat, s.Lng, s.HexCell,
		)
		if err != nil {
			return fmt.Errorf("repository: upsert station %q: %w", s.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: commit bulk insert tx: %w", err)
	}

	return nil
}

// Schema is the DDL the catalogue loader applies before any bulk
// insert. It mirrors the original (name, address, city, state)
// uniqueness constraint and the indexes that make cell and price
// lookups cheap.
const Schema = `
CREATE TABLE IF NOT EXISTS fuel_stations (
	id             SERIAL PRIMARY KEY,
	truckstop_name TEXT NOT NULL,
	address        TEXT NOT NULL,
	city           TEXT NOT NULL,
	state          TEXT NOT NULL,
	rack_id        INTEGER NOT NULL,
	retail_price   NUMERIC(6,3) NOT NULL,
	latitude       DOUBLE PRECISION NOT NULL,
	longitude      DOUBLE PRECISION NOT NULL,
	h3_index       TEXT NOT NULL DEFAULT '',
	UNIQUE (truckstop_name, address, city, state)
);
CREATE INDEX IF NOT EXISTS fuel_stations_h3_index_idx ON fuel_stations (h3_index);
CREATE INDEX IF NOT EXISTS fuel_stations_state_idx ON fuel_stations (state);
CREATE INDEX IF NOT EXISTS fuel_stations_retail_price_idx ON fuel_stations (retail_price);
`
