package handlers

import (
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/services"

	"go.uber.org/zap"
)

// RouteHandler exposes route computation without cost optimization.
type RouteHandler struct {
	Logger   *zap.Logger
	Pipeline *services.TripPipeline
}

func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	route, _, _, err := h.Pipeline.ComputeRoute(
		r.Context(),
		toServiceAddress(req.Origin),
		toServiceAddress(req.Destination),
		toServiceAddresses(req.Waypoints),
		req.Profile,
	)
	if err != nil {
		writeDomainError(h.Logger, w, r, err)
		return
	}

	res := dto.RouteResponse{
		DistanceKm:         dto.Round(route.DistanceKm, 2),
		DurationHours:      dto.Round(route.DurationHours, 3),
		AvgSpeedKmh:        dto.Round(route.AvgSpeedKmh, 1),
		PredominantWayType: string(route.PredominantWayType),
		HasToll:            route.HasToll,
		Geometry:           toGeometry(route.Geometry),
		Instructions:       route.Instructions,
	}

	writeJSON(h.Logger, w, r, http.StatusOK, res)
}
