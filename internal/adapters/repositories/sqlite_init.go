package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		vehicle_name TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km REAL NOT NULL,
		optimal_speed_kmh REAL NOT NULL,
		total_cost REAL NOT NULL,
		savings REAL NOT NULL,
		savings_pct REAL NOT NULL,
		travel_time_hours REAL NOT NULL,
		fuel_price REAL NOT NULL,
		driver_cost_hour REAL NOT NULL,
		analysis TEXT,
		cost_curve TEXT
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        formatted_address TEXT NOT NULL,
        city TEXT NOT NULL DEFAULT '',
        region TEXT NOT NULL DEFAULT '',
        confidence REAL,
        match_type TEXT NOT NULL DEFAULT 'unknown'
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
    ON trips(created_at);
	`

	createVehicleIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_vehicle_name
    ON trips(vehicle_name);
	`

	statements := []string{
		createTripsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
		createVehicleIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Initialize the Postgres variant of the schema (used by cmd/dbtool).
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS trips (
		id BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		vehicle_name TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		optimal_speed_kmh DOUBLE PRECISION NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		savings DOUBLE PRECISION NOT NULL,
		savings_pct DOUBLE PRECISION NOT NULL,
		travel_time_hours DOUBLE PRECISION NOT NULL,
		fuel_price DOUBLE PRECISION NOT NULL,
		driver_cost_hour DOUBLE PRECISION NOT NULL,
		analysis TEXT,
		cost_curve TEXT
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_trips_vehicle_name ON trips(vehicle_name);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
