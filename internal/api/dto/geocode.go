package dto

// AddressInput is a free-text address; latitude/longitude may be supplied
// to skip geocoding.
type AddressInput struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type GeocodeRequest struct {
	Address string `json:"address"`
}

type GeoPointResponse struct {
	FormattedAddress string   `json:"formatted_address"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	City             string   `json:"city"`
	Region           string   `json:"region"`
	Confidence       *float64 `json:"confidence,omitempty"`
	MatchType        string   `json:"match_type"`
}
