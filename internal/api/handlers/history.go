package handlers

import (
	"net/http"
	"strconv"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/services"

	"go.uber.org/zap"
)

const defaultHistoryLimit = 10

// HistoryHandler exposes read-only access to the trip history store.
type HistoryHandler struct {
	Logger   *zap.Logger
	Pipeline *services.TripPipeline
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(h.Logger, w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	trips, err := h.Pipeline.History(r.Context(), limit)
	if err != nil {
		h.Logger.Error("list trip history failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.HistoryResponse{History: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.History = append(res.History, dto.TripResponse{
			ID:              t.ID,
			CreatedAt:       t.CreatedAt,
			VehicleName:     t.VehicleName,
			Origin:          t.Origin,
			Destination:     t.Destination,
			DistanceKm:      dto.Round(t.DistanceKm, 2),
			OptimalSpeedKmh: dto.Round(t.OptimalSpeedKmh, 1),
			TotalCost:       dto.Round(t.TotalCost, 2),
			Savings:         dto.Round(t.Savings, 2),
			SavingsPct:      dto.Round(t.SavingsPct, 2),
			TravelTimeHours: dto.Round(t.TravelTimeHours, 3),
			FuelPrice:       t.FuelPrice,
		})
	}

	writeJSON(h.Logger, w, r, http.StatusOK, res)
}

func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := h.Pipeline.Statistics(r.Context())
	if err != nil {
		h.Logger.Error("trip stats failed", zap.Error(err))
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	top := make([]dto.VehicleSavingsResponse, 0, len(stats.TopVehicles))
	for _, v := range stats.TopVehicles {
		top = append(top, dto.VehicleSavingsResponse{
			VehicleName:  v.VehicleName,
			Trips:        v.Trips,
			TotalSavings: dto.Round(v.TotalSavings, 2),
		})
	}

	res := dto.StatsResponse{
		TotalTrips:       stats.TotalTrips,
		TotalSavings:     dto.Round(stats.TotalSavings, 2),
		AvgSavings:       dto.Round(stats.AvgSavings, 2),
		AvgSavingsPct:    dto.Round(stats.AvgSavingsPct, 2),
		TotalDistanceKm:  dto.Round(stats.TotalDistanceKm, 2),
		DistinctVehicles: stats.DistinctVehicles,
		TopVehicles:      top,
	}

	writeJSON(h.Logger, w, r, http.StatusOK, res)
}
