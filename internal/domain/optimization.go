package domain

import "time"

// CostPoint is one sample of the discretized speed search. Immutable once
// produced; the curve is ordered by increasing speed.
type CostPoint struct {
	SpeedKmh        float64
	FuelCost        float64
	TimeCost        float64
	TotalCost       float64
	TravelTimeHours float64
}

// SensitivityEntry reports the cost impact of perturbing the optimal speed
// by a fixed offset.
type SensitivityEntry struct {
	SpeedDelta   float64
	SpeedKmh     float64
	CostDelta    float64
	CostDeltaPct float64
}

// OptimalPoint is the cost breakdown at the chosen speed.
type OptimalPoint struct {
	SpeedKmh        float64
	TotalCost       float64
	FuelCost        float64
	TimeCost        float64
	TravelTimeHours float64
}

// Analysis explains how the optimum was selected.
type Analysis struct {
	Justification string
	OptimalPoint  OptimalPoint
	Sensitivity   []SensitivityEntry
	Method        string
	Constraints   string
}

// Scenario summarizes the trip the optimum applies to. RouteFactor is the
// way-type adjustment table the scenario was classified under.
type Scenario struct {
	DistanceKm          float64
	TravelTimeHours     float64
	EstimatedFuelLiters float64
	VehicleKey          string
	WayType             WayType
	RouteFactor         RouteTypeFactor
	FuelCost            float64
	TimeCost            float64
	SpeedRange          string
}

// OptimizationResult is the full output of one speed optimization.
// Produced fresh per request and never mutated after return.
type OptimizationResult struct {
	OptimalSpeedKmh    float64
	MinimalTotalCost   float64
	SavingsVsReference float64
	SavingsPct         float64
	CostCurve          []CostPoint
	Analysis           Analysis
	Scenario           Scenario
}

// TripRecord is the persisted snapshot of one completed optimization.
// The core emits it; the history store owns its lifecycle.
type TripRecord struct {
	ID               int64
	CreatedAt        time.Time
	VehicleName      string
	Origin           string
	Destination      string
	DistanceKm       float64
	OptimalSpeedKmh  float64
	TotalCost        float64
	Savings          float64
	SavingsPct       float64
	TravelTimeHours  float64
	FuelPrice        float64
	DriverCostHour   float64
	AnalysisJSON     string
	CostCurveJSON    string
}

// VehicleSavings is one top-N aggregate row.
type VehicleSavings struct {
	VehicleName  string
	Trips        int
	TotalSavings float64
}

// TripStats aggregates the history store.
type TripStats struct {
	TotalTrips       int
	TotalSavings     float64
	AvgSavings       float64
	AvgSavingsPct    float64
	TotalDistanceKm  float64
	DistinctVehicles int
	TopVehicles      []VehicleSavings
}
