package domain

import "fmt"

// Structured error taxonomy for the trip pipeline. Every error carries the
// context a caller needs to build user-facing guidance; transport maps each
// type to a distinct response shape.

// AddressTooShortError rejects addresses below the minimum useful length.
type AddressTooShortError struct {
	Address   string
	MinLength int
}

func (e *AddressTooShortError) Error() string {
	return fmt.Sprintf("address %q is too short (minimum %d characters)", e.Address, e.MinLength)
}

func (e *AddressTooShortError) Remediation() string {
	return "provide a full address with at least street and city"
}

// AddressNotFoundError indicates the geocoding provider returned no match.
type AddressNotFoundError struct {
	Address string
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("address %q not found", e.Address)
}

func (e *AddressNotFoundError) Remediation() string {
	return "check the address formatting and include city, region and postal code"
}

// LowConfidenceError rejects matches below the minimum confidence threshold.
type LowConfidenceError struct {
	Address     string
	Confidence  float64
	MatchType   MatchType
	Coordinates Coordinates
}

func (e *LowConfidenceError) Error() string {
	return fmt.Sprintf("address %q resolved with confidence %.2f below minimum", e.Address, e.Confidence)
}

func (e *LowConfidenceError) Remediation() string {
	return "verify the address exists and add more detail (street number, district, city)"
}

// OutOfRegionError rejects coordinates outside the deployment's service area.
type OutOfRegionError struct {
	Address     string
	Coordinates Coordinates
}

func (e *OutOfRegionError) Error() string {
	return fmt.Sprintf("address %q resolved outside the service region (lat=%.5f lon=%.5f)",
		e.Address, e.Coordinates.Lat, e.Coordinates.Lon)
}

func (e *OutOfRegionError) Remediation() string {
	return "confirm the address is inside the service region and include city and state"
}

// ImplausibleRouteError rejects origin/destination pairs whose great-circle
// distance exceeds any realistic single delivery trip, which almost always
// means one of the geocodes is wrong.
type ImplausibleRouteError struct {
	Origin      string
	Destination string
	DistanceKm  float64
	MaxKm       float64
}

func (e *ImplausibleRouteError) Error() string {
	return fmt.Sprintf("great-circle distance %.2f km between %q and %q exceeds the %.0f km limit",
		e.DistanceKm, e.Origin, e.Destination, e.MaxKm)
}

func (e *ImplausibleRouteError) Remediation() string {
	return "check that both addresses are correct and in the same region"
}

// RouteNotFoundError indicates the routing provider returned no route.
type RouteNotFoundError struct {
	Origin      string
	Destination string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route found between %q and %q", e.Origin, e.Destination)
}

// InvalidDistanceError is the optimizer precondition violation. It indicates
// a pipeline-ordering bug when reached through the full pipeline.
type InvalidDistanceError struct {
	DistanceKm float64
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("distance must be positive, got %.3f km", e.DistanceKm)
}

// ProviderUnavailableError wraps transient network failures from either
// external provider. The core never retries; the caller decides.
type ProviderUnavailableError struct {
	Op  string
	Err error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("%s: provider unavailable: %v", e.Op, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }
