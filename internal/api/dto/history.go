package dto

import "time"

type TripResponse struct {
	ID              int64     `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	VehicleName     string    `json:"vehicle_name"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DistanceKm      float64   `json:"distance_km"`
	OptimalSpeedKmh float64   `json:"optimal_speed_kmh"`
	TotalCost       float64   `json:"total_cost"`
	Savings         float64   `json:"savings"`
	SavingsPct      float64   `json:"savings_pct"`
	TravelTimeHours float64   `json:"travel_time_hours"`
	FuelPrice       float64   `json:"fuel_price"`
}

type HistoryResponse struct {
	History []TripResponse `json:"history"`
}

type VehicleSavingsResponse struct {
	VehicleName  string  `json:"vehicle_name"`
	Trips        int     `json:"trips"`
	TotalSavings float64 `json:"total_savings"`
}

type StatsResponse struct {
	TotalTrips       int                      `json:"total_trips"`
	TotalSavings     float64                  `json:"total_savings"`
	AvgSavings       float64                  `json:"avg_savings"`
	AvgSavingsPct    float64                  `json:"avg_savings_pct"`
	TotalDistanceKm  float64                  `json:"total_distance_km"`
	DistinctVehicles int                      `json:"distinct_vehicles"`
	TopVehicles      []VehicleSavingsResponse `json:"top_vehicles"`
}
