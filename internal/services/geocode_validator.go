package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"

	"go.uber.org/zap"
)

// Quality gates for geocoding results.
const (
	minAddressLength = 5

	// Below this confidence a match is too unreliable to use at all.
	minConfidence = 0.5
	// Below this confidence (or on fallback matches) the point is accepted
	// but flagged as approximate.
	approximateConfidence = 0.7

	approximateMarker = " (approximate location)"
)

// Valid geographic domain of the deployment (roughly Brazil).
const (
	regionLatMin = -35.0
	regionLatMax = 5.0
	regionLonMin = -75.0
	regionLonMax = -30.0
)

// GeocodeCache stores accepted points keyed by normalized address.
// Implementations may be nil-free; the validator treats a nil cache as off.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (*domain.GeoPoint, error)
	Put(ctx context.Context, address string, point domain.GeoPoint) error
}

// GeocodeValidator turns a free-text address into a validated GeoPoint or a
// typed rejection. Every point it returns has passed the confidence and
// bounding-box gates.
type GeocodeValidator struct {
	logger   *zap.Logger
	provider ports.GeocodingProvider
	cache    GeocodeCache
}

func NewGeocodeValidator(logger *zap.Logger, provider ports.GeocodingProvider, cache GeocodeCache) *GeocodeValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeocodeValidator{logger: logger, provider: provider, cache: cache}
}

func inServiceRegion(c domain.Coordinates) bool {
	return c.Lat >= regionLatMin && c.Lat <= regionLatMax &&
		c.Lon >= regionLonMin && c.Lon <= regionLonMax
}

// Resolve geocodes the address and applies the acceptance policy.
func (v *GeocodeValidator) Resolve(ctx context.Context, address string) (domain.GeoPoint, error) {
	trimmed := strings.TrimSpace(address)
	if utf8.RuneCountInString(trimmed) < minAddressLength {
		return domain.GeoPoint{}, &domain.AddressTooShortError{
			Address:   address,
			MinLength: minAddressLength,
		}
	}

	norm := strings.Join(strings.Fields(trimmed), " ")

	if v.cache != nil {
		cached, err := v.cache.Get(ctx, norm)
		if err != nil {
			v.logger.Warn("geocode cache read failed", zap.String("address", norm), zap.Error(err))
		} else if cached != nil {
			v.logger.Debug("geocode cache hit", zap.String("address", norm))
			return *cached, nil
		}
	}

	candidate, found, err := v.provider.Search(ctx, norm)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: %w", norm, err)
	}
	if !found {
		return domain.GeoPoint{}, &domain.AddressNotFoundError{Address: address}
	}

	// Absent confidence means lowest trust.
	confidence := 0.0
	if candidate.Confidence != nil {
		confidence = *candidate.Confidence
	}
	matchType := domain.ParseMatchType(candidate.MatchType)

	v.logger.Debug("geocode candidate",
		zap.String("address", norm),
		zap.Float64("confidence", confidence),
		zap.String("match_type", string(matchType)),
		zap.Float64("lat", candidate.Coordinates.Lat),
		zap.Float64("lon", candidate.Coordinates.Lon),
	)

	if !inServiceRegion(candidate.Coordinates) {
		return domain.GeoPoint{}, &domain.OutOfRegionError{
			Address:     address,
			Coordinates: candidate.Coordinates,
		}
	}

	if confidence < minConfidence {
		return domain.GeoPoint{}, &domain.LowConfidenceError{
			Address:     address,
			Confidence:  confidence,
			MatchType:   matchType,
			Coordinates: candidate.Coordinates,
		}
	}

	label := candidate.Label
	if label == "" {
		label = trimmed
	}
	if confidence < approximateConfidence || matchType == domain.MatchFallback {
		v.logger.Info("accepting low-precision geocode",
			zap.String("address", norm),
			zap.Float64("confidence", confidence),
			zap.String("match_type", string(matchType)),
		)
		label += approximateMarker
	}

	point := domain.GeoPoint{
		Coordinates:      candidate.Coordinates,
		FormattedAddress: label,
		City:             candidate.Locality,
		Region:           candidate.Region,
		Confidence:       &confidence,
		MatchType:        matchType,
	}

	if v.cache != nil {
		if err := v.cache.Put(ctx, norm, point); err != nil {
			v.logger.Warn("geocode cache write failed", zap.String("address", norm), zap.Error(err))
		}
	}

	return point, nil
}
