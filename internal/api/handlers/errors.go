package handlers

import (
	"errors"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"

	"go.uber.org/zap"
)

// errorPayload is the structured error body: a stable code, a message, the
// error's context fields, and remediation guidance for the end user.
type errorPayload struct {
	Code       string         `json:"error"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// writeDomainError maps the pipeline's typed errors to distinct HTTP
// responses. Unknown errors collapse to an opaque 500.
func writeDomainError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		tooShort      *domain.AddressTooShortError
		notFound      *domain.AddressNotFoundError
		lowConfidence *domain.LowConfidenceError
		outOfRegion   *domain.OutOfRegionError
		implausible   *domain.ImplausibleRouteError
		noRoute       *domain.RouteNotFoundError
		badDistance   *domain.InvalidDistanceError
		unavailable   *domain.ProviderUnavailableError
	)

	switch {
	case errors.As(err, &tooShort):
		writeJSON(logger, w, r, http.StatusBadRequest, errorPayload{
			Code:    "invalid_address_format",
			Message: tooShort.Error(),
			Details: map[string]any{
				"address":    tooShort.Address,
				"min_length": tooShort.MinLength,
			},
			Suggestion: tooShort.Remediation(),
		})

	case errors.As(err, &notFound):
		writeJSON(logger, w, r, http.StatusNotFound, errorPayload{
			Code:    "geocoding_not_found",
			Message: notFound.Error(),
			Details: map[string]any{
				"address": notFound.Address,
			},
			Suggestion: notFound.Remediation(),
		})

	case errors.As(err, &lowConfidence):
		writeJSON(logger, w, r, http.StatusUnprocessableEntity, errorPayload{
			Code:    "geocoding_very_low_quality",
			Message: lowConfidence.Error(),
			Details: map[string]any{
				"address":     lowConfidence.Address,
				"confidence":  lowConfidence.Confidence,
				"match_type":  string(lowConfidence.MatchType),
				"coordinates": []float64{lowConfidence.Coordinates.Lon, lowConfidence.Coordinates.Lat},
			},
			Suggestion: lowConfidence.Remediation(),
		})

	case errors.As(err, &outOfRegion):
		writeJSON(logger, w, r, http.StatusUnprocessableEntity, errorPayload{
			Code:    "geocoding_outside_region",
			Message: outOfRegion.Error(),
			Details: map[string]any{
				"address":     outOfRegion.Address,
				"coordinates": []float64{outOfRegion.Coordinates.Lon, outOfRegion.Coordinates.Lat},
			},
			Suggestion: outOfRegion.Remediation(),
		})

	case errors.As(err, &implausible):
		writeJSON(logger, w, r, http.StatusUnprocessableEntity, errorPayload{
			Code:    "route_too_long",
			Message: implausible.Error(),
			Details: map[string]any{
				"origin":      implausible.Origin,
				"destination": implausible.Destination,
				"distance_km": dto.Round(implausible.DistanceKm, 2),
				"max_km":      implausible.MaxKm,
			},
			Suggestion: implausible.Remediation(),
		})

	case errors.As(err, &noRoute):
		writeJSON(logger, w, r, http.StatusNotFound, errorPayload{
			Code:    "route_not_found",
			Message: noRoute.Error(),
			Details: map[string]any{
				"origin":      noRoute.Origin,
				"destination": noRoute.Destination,
			},
		})

	case errors.As(err, &badDistance):
		// Pipeline-ordering bug: the sanity and routing gates should have
		// rejected this trip before the optimizer ran.
		logger.Error("invalid distance reached the optimizer", zap.Error(err))
		writeError(logger, w, r, http.StatusInternalServerError, "internal server error")

	case errors.As(err, &unavailable):
		writeJSON(logger, w, r, http.StatusBadGateway, errorPayload{
			Code:    "provider_unavailable",
			Message: "external provider is temporarily unavailable",
		})

	default:
		logger.Error("unhandled pipeline error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(logger, w, r, http.StatusInternalServerError, "internal server error")
	}
}
