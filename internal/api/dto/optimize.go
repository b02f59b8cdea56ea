package dto

import "math"

type OptimizeRequest struct {
	Route             RouteRequest `json:"route"`
	VehicleName       string       `json:"vehicle_name"`
	Vehicle           string       `json:"vehicle,omitempty"`
	FuelPrice         float64      `json:"fuel_price"`
	DriverCostPerHour float64      `json:"driver_cost_per_hour"`
}

type CostPointResponse struct {
	SpeedKmh        float64 `json:"speed_kmh"`
	TotalCost       float64 `json:"total_cost"`
	FuelCost        float64 `json:"fuel_cost"`
	TimeCost        float64 `json:"time_cost"`
	TravelTimeHours float64 `json:"travel_time_hours"`
}

type SensitivityResponse struct {
	SpeedDelta   float64 `json:"speed_delta"`
	SpeedKmh     float64 `json:"speed_kmh"`
	CostDelta    float64 `json:"cost_delta"`
	CostDeltaPct float64 `json:"cost_delta_pct"`
}

type OptimalPointResponse struct {
	SpeedKmh        float64 `json:"speed_kmh"`
	TotalCost       float64 `json:"total_cost"`
	FuelCost        float64 `json:"fuel_cost"`
	TimeCost        float64 `json:"time_cost"`
	TravelTimeHours float64 `json:"travel_time_hours"`
}

type AnalysisResponse struct {
	Justification string                `json:"justification"`
	OptimalPoint  OptimalPointResponse  `json:"optimal_point"`
	Sensitivity   []SensitivityResponse `json:"sensitivity"`
	Method        string                `json:"method"`
	Constraints   string                `json:"constraints"`
}

type RouteFactorResponse struct {
	ConsumptionFactor float64 `json:"consumption_factor"`
	StopTimeFactor    float64 `json:"stop_time_factor"`
	AvgStopSpeedKmh   float64 `json:"avg_stop_speed_kmh"`
}

type ScenarioResponse struct {
	DistanceKm          float64             `json:"distance_km"`
	TravelTimeHours     float64             `json:"travel_time_hours"`
	EstimatedFuelLiters float64             `json:"estimated_fuel_liters"`
	VehicleKey          string              `json:"vehicle_key"`
	WayType             string              `json:"way_type"`
	RouteFactor         RouteFactorResponse `json:"route_factor"`
	FuelCost            float64             `json:"fuel_cost"`
	TimeCost            float64             `json:"time_cost"`
	SpeedRange          string              `json:"speed_range"`
}

type RouteInfoResponse struct {
	VehicleName        string      `json:"vehicle_name"`
	DistanceKm         float64     `json:"distance_km"`
	DurationHours      float64     `json:"duration_hours"`
	SuggestedAvgSpeed  float64     `json:"suggested_avg_speed_kmh"`
	PredominantWayType string      `json:"predominant_way_type"`
	HasToll            bool        `json:"has_toll"`
	Origin             string      `json:"origin"`
	Destination        string      `json:"destination"`
	Geometry           [][]float64 `json:"geometry"`
}

type OptimizeResponse struct {
	OptimalSpeedKmh    float64             `json:"optimal_speed_kmh"`
	TotalCost          float64             `json:"total_cost"`
	SavingsVsReference float64             `json:"savings_vs_reference"`
	SavingsPct         float64             `json:"savings_pct"`
	CostCurve          []CostPointResponse `json:"cost_curve"`
	Analysis           AnalysisResponse    `json:"analysis"`
	Scenario           ScenarioResponse    `json:"scenario"`
	RouteInfo          RouteInfoResponse   `json:"route_info"`
}

// Round is display rounding for the DTO layer only; domain values keep full
// precision so the cost identities hold exactly.
func Round(v float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Round(v*pow) / pow
}
