package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// GeocodeCandidate is the raw best match returned by the geocoding provider,
// before any quality gating. Confidence is nil when the provider omits it.
type GeocodeCandidate struct {
	Coordinates domain.Coordinates
	Label       string
	Locality    string
	Region      string
	Confidence  *float64
	MatchType   string
}

// Contract for resolving a free-text address to the provider's best match.
type GeocodingProvider interface {
	// Search returns the single best candidate for the address.
	// found is false when the provider has no match at all.
	Search(ctx context.Context, address string) (candidate GeocodeCandidate, found bool, err error)
}
