package services

import (
	"context"
	"fmt"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"

	"go.uber.org/zap"
)

// RouteAssembler obtains a route between validated points from the
// directions provider and normalizes the provider's variable response shape
// into a RouteResult.
type RouteAssembler struct {
	logger   *zap.Logger
	provider ports.DirectionsProvider
}

func NewRouteAssembler(logger *zap.Logger, provider ports.DirectionsProvider) *RouteAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteAssembler{logger: logger, provider: provider}
}

// Route requests directions for origin, waypoints in order, then destination.
func (a *RouteAssembler) Route(
	ctx context.Context,
	origin domain.GeoPoint,
	destination domain.GeoPoint,
	waypoints []domain.GeoPoint,
	profileKey string,
) (domain.RouteResult, error) {
	coords := make([]domain.Coordinates, 0, 2+len(waypoints))
	coords = append(coords, origin.Coordinates)
	for _, w := range waypoints {
		coords = append(coords, w.Coordinates)
	}
	coords = append(coords, destination.Coordinates)

	raw, found, err := a.provider.Directions(ctx, coords, profileKey)
	if err != nil {
		return domain.RouteResult{}, fmt.Errorf("route %q -> %q: %w",
			origin.FormattedAddress, destination.FormattedAddress, err)
	}
	if !found {
		return domain.RouteResult{}, &domain.RouteNotFoundError{
			Origin:      origin.FormattedAddress,
			Destination: destination.FormattedAddress,
		}
	}

	meters, seconds := extractMetrics(raw)

	distanceKm := meters / 1000
	durationHours := seconds / 3600
	avgSpeed := 0.0
	if distanceKm > 0 && durationHours > 0 {
		avgSpeed = distanceKm / durationHours
	} else {
		// Both-or-neither fallback state; never expose a 0/0 speed.
		distanceKm = 0
		durationHours = 0
	}

	geometry := raw.GeometryCoords
	if len(geometry) < 2 {
		// Encoded or missing geometry degrades to a straight line.
		geometry = []domain.Coordinates{origin.Coordinates, destination.Coordinates}
	}

	wayType := classifyWayType(raw.Segments)

	a.logger.Debug("route assembled",
		zap.Float64("distance_km", distanceKm),
		zap.Float64("duration_hours", durationHours),
		zap.String("way_type", string(wayType)),
		zap.Int("geometry_points", len(geometry)),
	)

	instructions := raw.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return domain.RouteResult{
		DistanceKm:         distanceKm,
		DurationHours:      durationHours,
		AvgSpeedKmh:        avgSpeed,
		PredominantWayType: wayType,
		HasToll:            false,
		Geometry:           geometry,
		Instructions:       instructions,
	}, nil
}

// extractMetrics prefers the provider's top-level summary and falls back to
// summing per-segment metrics when either summary field is zero (some
// providers omit the summary but include segments).
func extractMetrics(raw ports.RawRoute) (meters, seconds float64) {
	meters = raw.SummaryDistanceMeters
	seconds = raw.SummaryDurationSeconds

	if meters == 0 || seconds == 0 {
		var segMeters, segSeconds float64
		for _, seg := range raw.Segments {
			segMeters += seg.DistanceMeters
			segSeconds += seg.DurationSeconds
		}
		if len(raw.Segments) > 0 {
			meters = segMeters
			seconds = segSeconds
		}
	}

	return meters, seconds
}

// classifyWayType is a coarse heuristic: any urban/city marker in a segment
// description classifies the whole route as urban.
func classifyWayType(segments []ports.RouteSegment) domain.WayType {
	for _, seg := range segments {
		descr := strings.ToLower(seg.Description)
		if strings.Contains(descr, "city") || strings.Contains(descr, "urban") {
			return domain.WayTypeUrban
		}
	}
	return domain.WayTypeIntercity
}
