package handlers

import (
	"net/http"
	"strings"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/services"

	"go.uber.org/zap"
)

// OptimizeHandler runs the full trip pipeline: geocoding, routing and speed
// optimization, with best-effort history persistence.
type OptimizeHandler struct {
	Logger   *zap.Logger
	Pipeline *services.TripPipeline
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(h.Logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.VehicleName) == "" {
		writeError(h.Logger, w, r, http.StatusBadRequest, "vehicle_name is required")
		return
	}
	if req.FuelPrice <= 0 {
		writeError(h.Logger, w, r, http.StatusBadRequest, "fuel_price must be positive")
		return
	}
	if req.DriverCostPerHour <= 0 {
		writeError(h.Logger, w, r, http.StatusBadRequest, "driver_cost_per_hour must be positive")
		return
	}

	result, err := h.Pipeline.Run(r.Context(), services.TripRequest{
		Origin:            toServiceAddress(req.Route.Origin),
		Destination:       toServiceAddress(req.Route.Destination),
		Waypoints:         toServiceAddresses(req.Route.Waypoints),
		ProfileKey:        req.Route.Profile,
		VehicleName:       req.VehicleName,
		VehicleKey:        req.Vehicle,
		FuelPrice:         req.FuelPrice,
		DriverCostPerHour: req.DriverCostPerHour,
	})
	if err != nil {
		writeDomainError(h.Logger, w, r, err)
		return
	}

	writeJSON(h.Logger, w, r, http.StatusOK, toOptimizeResponse(result))
}

// toOptimizeResponse applies display rounding: speeds to one decimal, money
// to two, hours to three. Domain values stay full precision.
func toOptimizeResponse(res *services.TripResult) dto.OptimizeResponse {
	opt := res.Optimization

	curve := make([]dto.CostPointResponse, 0, len(opt.CostCurve))
	for _, p := range opt.CostCurve {
		curve = append(curve, dto.CostPointResponse{
			SpeedKmh:        dto.Round(p.SpeedKmh, 1),
			TotalCost:       dto.Round(p.TotalCost, 2),
			FuelCost:        dto.Round(p.FuelCost, 2),
			TimeCost:        dto.Round(p.TimeCost, 2),
			TravelTimeHours: dto.Round(p.TravelTimeHours, 3),
		})
	}

	sensitivity := make([]dto.SensitivityResponse, 0, len(opt.Analysis.Sensitivity))
	for _, s := range opt.Analysis.Sensitivity {
		sensitivity = append(sensitivity, dto.SensitivityResponse{
			SpeedDelta:   s.SpeedDelta,
			SpeedKmh:     dto.Round(s.SpeedKmh, 1),
			CostDelta:    dto.Round(s.CostDelta, 2),
			CostDeltaPct: dto.Round(s.CostDeltaPct, 2),
		})
	}

	return dto.OptimizeResponse{
		OptimalSpeedKmh:    dto.Round(opt.OptimalSpeedKmh, 1),
		TotalCost:          dto.Round(opt.MinimalTotalCost, 2),
		SavingsVsReference: dto.Round(opt.SavingsVsReference, 2),
		SavingsPct:         dto.Round(opt.SavingsPct, 2),
		CostCurve:          curve,
		Analysis: dto.AnalysisResponse{
			Justification: opt.Analysis.Justification,
			OptimalPoint: dto.OptimalPointResponse{
				SpeedKmh:        dto.Round(opt.Analysis.OptimalPoint.SpeedKmh, 1),
				TotalCost:       dto.Round(opt.Analysis.OptimalPoint.TotalCost, 2),
				FuelCost:        dto.Round(opt.Analysis.OptimalPoint.FuelCost, 2),
				TimeCost:        dto.Round(opt.Analysis.OptimalPoint.TimeCost, 2),
				TravelTimeHours: dto.Round(opt.Analysis.OptimalPoint.TravelTimeHours, 3),
			},
			Sensitivity: sensitivity,
			Method:      opt.Analysis.Method,
			Constraints: opt.Analysis.Constraints,
		},
		Scenario: dto.ScenarioResponse{
			DistanceKm:          dto.Round(opt.Scenario.DistanceKm, 2),
			TravelTimeHours:     dto.Round(opt.Scenario.TravelTimeHours, 3),
			EstimatedFuelLiters: dto.Round(opt.Scenario.EstimatedFuelLiters, 2),
			VehicleKey:          opt.Scenario.VehicleKey,
			WayType:             string(opt.Scenario.WayType),
			RouteFactor: dto.RouteFactorResponse{
				ConsumptionFactor: opt.Scenario.RouteFactor.ConsumptionFactor,
				StopTimeFactor:    opt.Scenario.RouteFactor.StopTimeFactor,
				AvgStopSpeedKmh:   opt.Scenario.RouteFactor.AvgStopSpeedKmh,
			},
			FuelCost:   dto.Round(opt.Scenario.FuelCost, 2),
			TimeCost:   dto.Round(opt.Scenario.TimeCost, 2),
			SpeedRange: opt.Scenario.SpeedRange,
		},
		RouteInfo: dto.RouteInfoResponse{
			VehicleName:        res.VehicleName,
			DistanceKm:         dto.Round(res.Route.DistanceKm, 2),
			DurationHours:      dto.Round(res.Route.DurationHours, 3),
			SuggestedAvgSpeed:  dto.Round(res.Route.AvgSpeedKmh, 1),
			PredominantWayType: string(res.Route.PredominantWayType),
			HasToll:            res.Route.HasToll,
			Origin:             res.Origin.FormattedAddress,
			Destination:        res.Destination.FormattedAddress,
			Geometry:           toGeometry(res.Route.Geometry),
		},
	}
}
