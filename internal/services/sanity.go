package services

import (
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/geo"
)

// Great-circle distances beyond this almost always indicate a geocoding
// mismatch (e.g. two different countries), so the pipeline rejects them
// before spending a routing-provider call.
const maxPlausibleTripKm = 2000.0

// CheckTripPlausibility rejects origin/destination pairs whose straight-line
// distance exceeds any realistic single delivery trip.
func CheckTripPlausibility(origin, destination domain.GeoPoint) error {
	directKm := geo.HaversineKm(
		origin.Coordinates.Lat, origin.Coordinates.Lon,
		destination.Coordinates.Lat, destination.Coordinates.Lon,
	)

	if directKm > maxPlausibleTripKm {
		return &domain.ImplausibleRouteError{
			Origin:      origin.FormattedAddress,
			Destination: destination.FormattedAddress,
			DistanceKm:  directKm,
			MaxKm:       maxPlausibleTripKm,
		}
	}

	return nil
}
