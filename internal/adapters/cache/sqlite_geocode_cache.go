package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fuel-route-service/internal/domain"
)

// SQLite backed cache mapping normalized address strings to accepted
// GeoPoints. Only points that already passed the validator's quality gates
// are stored, so a cache hit re-enters the pipeline pre-accepted.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Get fetches a cached accepted point for the address.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (*domain.GeoPoint, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	q := `
	SELECT
        lon,
        lat,
        formatted_address,
        city,
        region,
        confidence,
        match_type
    FROM geocode_cache
    WHERE address = ?;
	`

	var (
		lon, lat   float64
		label      string
		city       string
		region     string
		confidence sql.NullFloat64
		matchType  string
	)
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &label, &city, &region, &confidence, &matchType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	point := &domain.GeoPoint{
		Coordinates:      domain.Coordinates{Lon: lon, Lat: lat},
		FormattedAddress: label,
		City:             city,
		Region:           region,
		MatchType:        domain.ParseMatchType(matchType),
	}
	if confidence.Valid {
		v := confidence.Float64
		point.Confidence = &v
	}

	return point, nil
}

// Put stores an accepted point under the normalized address key.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, point domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	var confidence sql.NullFloat64
	if point.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *point.Confidence, Valid: true}
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        address,
        lon,
        lat,
        formatted_address,
        city,
        region,
        confidence,
        match_type
    )
    VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		address,
		point.Coordinates.Lon,
		point.Coordinates.Lat,
		point.FormattedAddress,
		point.City,
		point.Region,
		confidence,
		string(point.MatchType),
	); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
