package dto

type RouteRequest struct {
	Origin      AddressInput   `json:"origin"`
	Destination AddressInput   `json:"destination"`
	Waypoints   []AddressInput `json:"waypoints,omitempty"`
	Profile     string         `json:"profile,omitempty"`
}

type RouteResponse struct {
	DistanceKm         float64     `json:"distance_km"`
	DurationHours      float64     `json:"duration_hours"`
	AvgSpeedKmh        float64     `json:"avg_speed_kmh"`
	PredominantWayType string      `json:"predominant_way_type"`
	HasToll            bool        `json:"has_toll"`
	Geometry           [][]float64 `json:"geometry"`
	Instructions       []string    `json:"instructions"`
}
