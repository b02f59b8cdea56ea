package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// RouteSegment is one per-leg breakdown entry of a provider route.
type RouteSegment struct {
	DistanceMeters  float64
	DurationSeconds float64
	Description     string
}

// RawRoute is the first route returned by the directions provider.
// Exactly one of GeometryCoords / GeometryEncoded may be populated; both may
// be empty when the provider omits geometry entirely.
type RawRoute struct {
	SummaryDistanceMeters  float64
	SummaryDurationSeconds float64
	Segments               []RouteSegment
	GeometryCoords         []domain.Coordinates
	GeometryEncoded        string
	Instructions           []string
}

// Contract for requesting directions along an ordered coordinate list.
type DirectionsProvider interface {
	// Directions returns the provider's first candidate route for the given
	// ordered coordinates and vehicle profile key.
	// found is false when the provider returns no route.
	Directions(ctx context.Context, coords []domain.Coordinates, profileKey string) (route RawRoute, found bool, err error)
}
