package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Save appends one completed optimization snapshot.
func (s *SqliteTripRepository) Save(ctx context.Context, rec *domain.TripRecord) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if rec == nil {
		return errors.New("save trip: record is nil")
	}

	query := `
	INSERT INTO trips (
		vehicle_name,
		origin,
		destination,
		distance_km,
		optimal_speed_kmh,
		total_cost,
		savings,
		savings_pct,
		travel_time_hours,
		fuel_price,
		driver_cost_hour,
		analysis,
		cost_curve
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		rec.VehicleName,
		rec.Origin,
		rec.Destination,
		rec.DistanceKm,
		rec.OptimalSpeedKmh,
		rec.TotalCost,
		rec.Savings,
		rec.SavingsPct,
		rec.TravelTimeHours,
		rec.FuelPrice,
		rec.DriverCostHour,
		rec.AnalysisJSON,
		rec.CostCurveJSON,
	)
	if err != nil {
		return fmt.Errorf("save trip: insert trips row: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}

	return nil
}

// List returns up to limit trips, newest first.
func (s *SqliteTripRepository) List(ctx context.Context, limit int) ([]*domain.TripRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
	SELECT
		id,
		created_at,
		vehicle_name,
		origin,
		destination,
		distance_km,
		optimal_speed_kmh,
		total_cost,
		savings,
		savings_pct,
		travel_time_hours,
		fuel_price,
		driver_cost_hour
	FROM trips
	ORDER BY created_at DESC, id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.TripRecord, 0, limit)
	for rows.Next() {
		var rec domain.TripRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.CreatedAt,
			&rec.VehicleName,
			&rec.Origin,
			&rec.Destination,
			&rec.DistanceKm,
			&rec.OptimalSpeedKmh,
			&rec.TotalCost,
			&rec.Savings,
			&rec.SavingsPct,
			&rec.TravelTimeHours,
			&rec.FuelPrice,
			&rec.DriverCostHour,
		); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

// Stats aggregates the whole history store.
func (s *SqliteTripRepository) Stats(ctx context.Context) (domain.TripStats, error) {
	if s.DB == nil {
		return domain.TripStats{}, errors.New("sqlite trip repository: DB is nil")
	}

	aggQuery := `
	SELECT
		COUNT(*),
		COALESCE(SUM(savings), 0),
		COALESCE(AVG(savings), 0),
		COALESCE(AVG(savings_pct), 0),
		COALESCE(SUM(distance_km), 0),
		COUNT(DISTINCT vehicle_name)
	FROM trips;
	`

	var stats domain.TripStats
	if err := s.DB.QueryRowContext(ctx, aggQuery).Scan(
		&stats.TotalTrips,
		&stats.TotalSavings,
		&stats.AvgSavings,
		&stats.AvgSavingsPct,
		&stats.TotalDistanceKm,
		&stats.DistinctVehicles,
	); err != nil {
		return domain.TripStats{}, fmt.Errorf("trip stats: aggregate query: %w", err)
	}

	topQuery := `
	SELECT vehicle_name, COUNT(*), SUM(savings)
	FROM trips
	GROUP BY vehicle_name
	ORDER BY SUM(savings) DESC
	LIMIT 5;
	`
	rows, err := s.DB.QueryContext(ctx, topQuery)
	if err != nil {
		return domain.TripStats{}, fmt.Errorf("trip stats: top vehicles query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.VehicleSavings
		if err := rows.Scan(&v.VehicleName, &v.Trips, &v.TotalSavings); err != nil {
			return domain.TripStats{}, fmt.Errorf("trip stats: scan top vehicle row: %w", err)
		}
		stats.TopVehicles = append(stats.TopVehicles, v)
	}
	if err := rows.Err(); err != nil {
		return domain.TripStats{}, fmt.Errorf("trip stats: row iteration: %w", err)
	}

	return stats, nil
}
