package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// MatchType classifies how the geocoding provider resolved an address.
type MatchType string

const (
	MatchExact        MatchType = "exact"
	MatchInterpolated MatchType = "interpolated"
	MatchFallback     MatchType = "fallback"
	MatchUnknown      MatchType = "unknown"
)

// ParseMatchType maps a provider-reported match type string onto the known
// set, treating anything unrecognized (or absent) as lowest trust.
func ParseMatchType(s string) MatchType {
	switch MatchType(s) {
	case MatchExact, MatchInterpolated, MatchFallback:
		return MatchType(s)
	default:
		return MatchUnknown
	}
}

// GeoPoint is a validated, accepted geocoding result.
//
// A GeoPoint handed out by the geocode validator has already passed the
// confidence and bounding-box gates; Confidence is nil only for points the
// caller supplied directly as coordinates.
type GeoPoint struct {
	Coordinates      Coordinates
	FormattedAddress string
	City             string
	Region           string
	Confidence       *float64
	MatchType        MatchType
}
