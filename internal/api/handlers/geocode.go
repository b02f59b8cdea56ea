package handlers

import (
	"net/http"
	"strings"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/services"

	"go.uber.org/zap"
)

// GeocodeHandler exposes standalone address resolution.
type GeocodeHandler struct {
	Logger   *zap.Logger
	Pipeline *services.TripPipeline
}

// Resolve geocodes one address and applies the full quality gate, so the
// response is exactly the point a trip request would use.
func (h *GeocodeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GeocodeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.Address) == "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, "address is required")
		return
	}

	point, err := h.Pipeline.ResolveAddress(r.Context(), services.AddressInput{Address: req.Address})
	if err != nil {
		writeDomainError(h.Logger, w, r, err)
		return
	}

	writeJSON(h.Logger, w, r, http.StatusOK, toGeoPointResponse(point))
}
