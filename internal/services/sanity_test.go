package services

import (
	"errors"
	"testing"

	"fuel-route-service/internal/domain"
)

func geoPoint(lat, lon float64, label string) domain.GeoPoint {
	return domain.GeoPoint{
		Coordinates:      domain.Coordinates{Lon: lon, Lat: lat},
		FormattedAddress: label,
	}
}

func TestCheckTripPlausibility(t *testing.T) {
	saoPaulo := geoPoint(-23.5505, -46.6333, "São Paulo, SP")
	rio := geoPoint(-22.9068, -43.1729, "Rio de Janeiro, RJ")
	manaus := geoPoint(-3.1190, -60.0217, "Manaus, AM")

	if err := CheckTripPlausibility(saoPaulo, rio); err != nil {
		t.Fatalf("São Paulo -> Rio should be plausible: %v", err)
	}
	if err := CheckTripPlausibility(saoPaulo, saoPaulo); err != nil {
		t.Fatalf("zero-distance trip should be plausible: %v", err)
	}

	// São Paulo to Manaus is well over the straight-line limit.
	err := CheckTripPlausibility(saoPaulo, manaus)
	var implausible *domain.ImplausibleRouteError
	if !errors.As(err, &implausible) {
		t.Fatalf("error = %v, want ImplausibleRouteError", err)
	}
	if implausible.MaxKm != 2000 {
		t.Fatalf("limit = %v, want 2000", implausible.MaxKm)
	}
	if implausible.DistanceKm <= 2000 {
		t.Fatalf("reported distance = %v, want above the limit", implausible.DistanceKm)
	}
}

func TestCheckTripPlausibilityBoundary(t *testing.T) {
	// Points on one meridian so the great-circle distance is exactly the
	// latitude difference times 111.19 km/degree. 17.968 degrees is just
	// under the 2000 km limit, 18.020 just over; both endpoints stay
	// inside the service region.
	base := geoPoint(-30.0, -50.0, "origin")

	justUnder := geoPoint(-30.0+17.968, -50.0, "just under the limit")
	if err := CheckTripPlausibility(base, justUnder); err != nil {
		t.Fatalf("trip below the limit must pass: %v", err)
	}

	justOver := geoPoint(-30.0+18.020, -50.0, "just over the limit")
	err := CheckTripPlausibility(base, justOver)
	var implausible *domain.ImplausibleRouteError
	if !errors.As(err, &implausible) {
		t.Fatalf("error = %v, want ImplausibleRouteError just over the limit", err)
	}
	if implausible.DistanceKm <= 2000 || implausible.DistanceKm >= 2010 {
		t.Fatalf("reported distance = %v, want barely above 2000", implausible.DistanceKm)
	}
}
