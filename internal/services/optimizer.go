package services

import (
	"fmt"

	"fuel-route-service/internal/domain"

	"go.uber.org/zap"
)

// Fixed constants of the cost model. The bucket boundaries, multipliers and
// penalties are calibrated domain constants, not per-call tunables.
const (
	speedSamples = 50

	// Floor on fuel consumption so very short trips never price at zero.
	minFuelLiters = 0.05

	// Stop-and-go time penalty below this speed, in hours per km.
	stopPenaltySpeedKmh   = 40.0
	stopHoursPerKm        = 0.02
	refStopHoursPerKm     = 0.01
	referenceSpeedKmh     = 40.0
	referenceMultiplier   = 1.2
	sensitivityMultiplier = 1.2
)

var sensitivityDeltas = [...]float64{-10, -5, 5, 10}

// OptimizeRequest carries the inputs of one speed optimization.
type OptimizeRequest struct {
	DistanceKm            float64
	FuelPrice             float64
	BaseConsumptionKmPerL float64
	DriverCostPerHour     float64
	Vehicle               domain.VehicleProfile
	WayType               domain.WayType
}

// SpeedCostOptimizer finds the travel speed minimizing fuel cost plus time
// cost for a single trip. It is a pure computation over its inputs; the
// logger only emits diagnostics.
type SpeedCostOptimizer struct {
	logger  *zap.Logger
	factors *domain.RouteFactors
}

func NewSpeedCostOptimizer(logger *zap.Logger, factors *domain.RouteFactors) *SpeedCostOptimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if factors == nil {
		factors = domain.NewRouteFactors()
	}
	return &SpeedCostOptimizer{logger: logger, factors: factors}
}

// speedRange selects the search bounds from the trip distance. Short urban
// hops cannot reach highway speed; long hops cannot stay at crawl speed.
func speedRange(distanceKm float64) (vMin, vMax float64) {
	switch {
	case distanceKm < 1:
		return 15, 30
	case distanceKm < 5:
		return 20, 50
	case distanceKm < 15:
		return 30, 70
	case distanceKm < 50:
		return 50, 90
	default:
		return 60, 110
	}
}

// fuelMultiplier is the stepwise empirical penalty for low-speed stop-and-go
// and high-speed aerodynamic inefficiency. Deliberately discontinuous.
func fuelMultiplier(speedKmh float64) float64 {
	switch {
	case speedKmh < 30:
		return 1.4
	case speedKmh < 50:
		return 1.2
	case speedKmh > 70:
		return 1.3
	default:
		return 1.0
	}
}

func fuelLiters(distanceKm, baseConsumptionKmPerL, multiplier float64) float64 {
	liters := distanceKm / baseConsumptionKmPerL
	if liters < minFuelLiters {
		liters = minFuelLiters
	}
	return liters * multiplier
}

// costAt computes one cost sample of the general model.
func costAt(req OptimizeRequest, speedKmh float64) domain.CostPoint {
	liters := fuelLiters(req.DistanceKm, req.BaseConsumptionKmPerL, fuelMultiplier(speedKmh))
	fuelCost := liters * req.FuelPrice

	stopHours := 0.0
	if speedKmh < stopPenaltySpeedKmh {
		stopHours = req.DistanceKm * stopHoursPerKm
	}
	travelHours := req.DistanceKm/speedKmh + stopHours
	timeCost := travelHours * req.DriverCostPerHour

	return domain.CostPoint{
		SpeedKmh:        speedKmh,
		FuelCost:        fuelCost,
		TimeCost:        timeCost,
		TotalCost:       fuelCost + timeCost,
		TravelTimeHours: travelHours,
	}
}

// referenceCost prices the trip at a best-case 40 km/h baseline: moderate
// urban multiplier and a smaller stop penalty than the general model.
func referenceCost(req OptimizeRequest) float64 {
	liters := fuelLiters(req.DistanceKm, req.BaseConsumptionKmPerL, referenceMultiplier)
	travelHours := req.DistanceKm/referenceSpeedKmh + req.DistanceKm*refStopHoursPerKm
	return liters*req.FuelPrice + travelHours*req.DriverCostPerHour
}

// Optimize runs the discretized search and returns the full curve, the
// optimum, the reference comparison and the sensitivity table.
func (o *SpeedCostOptimizer) Optimize(req OptimizeRequest) (*domain.OptimizationResult, error) {
	if req.DistanceKm <= 0 {
		return nil, &domain.InvalidDistanceError{DistanceKm: req.DistanceKm}
	}

	vMin, vMax := speedRange(req.DistanceKm)
	o.logger.Debug("speed range selected",
		zap.Float64("distance_km", req.DistanceKm),
		zap.Float64("v_min", vMin),
		zap.Float64("v_max", vMax),
	)

	curve := make([]domain.CostPoint, 0, speedSamples)
	bestIdx := 0
	step := (vMax - vMin) / float64(speedSamples-1)
	for i := 0; i < speedSamples; i++ {
		point := costAt(req, vMin+float64(i)*step)
		curve = append(curve, point)
		// Strict comparison keeps the first occurrence on ties.
		if point.TotalCost < curve[bestIdx].TotalCost {
			bestIdx = i
		}
	}
	best := curve[bestIdx]

	o.logger.Debug("optimal speed found",
		zap.Float64("distance_km", req.DistanceKm),
		zap.Float64("optimal_speed_kmh", best.SpeedKmh),
		zap.Float64("total_cost", best.TotalCost),
	)

	refCost := referenceCost(req)
	savings := refCost - best.TotalCost
	savingsPct := 0.0
	if refCost > 0 {
		savingsPct = savings / refCost * 100
	}

	// Sensitivity probes use a fixed moderate multiplier and no stop
	// penalty; out-of-range perturbations are omitted, not clamped.
	sensitivity := make([]domain.SensitivityEntry, 0, len(sensitivityDeltas))
	for _, delta := range sensitivityDeltas {
		vTest := best.SpeedKmh + delta
		if vTest < vMin || vTest > vMax {
			continue
		}
		testCost := fuelLiters(req.DistanceKm, req.BaseConsumptionKmPerL, sensitivityMultiplier)*req.FuelPrice +
			(req.DistanceKm/vTest)*req.DriverCostPerHour
		diff := testCost - best.TotalCost
		sensitivity = append(sensitivity, domain.SensitivityEntry{
			SpeedDelta:   delta,
			SpeedKmh:     vTest,
			CostDelta:    diff,
			CostDeltaPct: diff / best.TotalCost * 100,
		})
	}

	justification := fmt.Sprintf(
		"Optimal speed of %.1f km/h chosen by evaluating %d points across the %.0f-%.0f km/h range. "+
			"This speed minimizes the cost function f(v) = %.2f, balancing fuel cost (%.2f) against time cost (%.2f). ",
		best.SpeedKmh, speedSamples, vMin, vMax, best.TotalCost, best.FuelCost, best.TimeCost,
	)
	switch {
	case savingsPct > 5:
		justification += fmt.Sprintf("Significant savings of %.1f%% versus the reference speed.", savingsPct)
	case savingsPct > 0:
		justification += fmt.Sprintf("Moderate savings of %.1f%% versus the reference speed.", savingsPct)
	default:
		justification += "The reference speed is already close to the optimum."
	}

	liters := fuelLiters(req.DistanceKm, req.BaseConsumptionKmPerL, fuelMultiplier(best.SpeedKmh))
	speedRangeLabel := fmt.Sprintf("%.0f-%.0f km/h", vMin, vMax)

	wayType := req.WayType
	if wayType == "" {
		wayType = domain.WayTypeUrban
	}

	return &domain.OptimizationResult{
		OptimalSpeedKmh:    best.SpeedKmh,
		MinimalTotalCost:   best.TotalCost,
		SavingsVsReference: savings,
		SavingsPct:         savingsPct,
		CostCurve:          curve,
		Analysis: domain.Analysis{
			Justification: justification,
			OptimalPoint: domain.OptimalPoint{
				SpeedKmh:        best.SpeedKmh,
				TotalCost:       best.TotalCost,
				FuelCost:        best.FuelCost,
				TimeCost:        best.TimeCost,
				TravelTimeHours: best.TravelTimeHours,
			},
			Sensitivity: sensitivity,
			Method:      fmt.Sprintf("discrete numerical optimization over %d samples", speedSamples),
			Constraints: fmt.Sprintf("speed limited to %s for a %.1f km trip", speedRangeLabel, req.DistanceKm),
		},
		Scenario: domain.Scenario{
			DistanceKm:          req.DistanceKm,
			TravelTimeHours:     best.TravelTimeHours,
			EstimatedFuelLiters: liters,
			VehicleKey:          req.Vehicle.Key,
			WayType:             wayType,
			RouteFactor:         o.factors.Factor(wayType),
			FuelCost:            best.FuelCost,
			TimeCost:            best.TimeCost,
			SpeedRange:          speedRangeLabel,
		},
	}, nil
}
