package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label      string   `json:"label"`
			Locality   string   `json:"locality"`
			Region     string   `json:"region"`
			Confidence *float64 `json:"confidence"`
			MatchType  string   `json:"match_type"`
		} `json:"properties"`
	} `json:"features"`
}

// Search resolves an address to the provider's single best candidate using
// OpenRouteService (/geocode/search) with the configured country restriction.
func (c *Client) Search(
	ctx context.Context,
	address string,
) (_ ports.GeocodeCandidate, _ bool, err error) {
	defer obs.Time(c.logger, "ors.geocode.search")(&err)

	endpoint := c.baseURL + "/geocode/search"
	norm := normalize(address)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.GeocodeCandidate{}, false, fmt.Errorf("geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", norm)
	q.Set("boundary.country", c.countryCode)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.do("geocode", req)
	if err != nil {
		return ports.GeocodeCandidate{}, false, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeCandidate{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.GeocodeCandidate{}, false, nil
	}

	feature := decoded.Features[0]
	coords := feature.Geometry.Coordinates
	if len(coords) != 2 {
		return ports.GeocodeCandidate{}, false, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return ports.GeocodeCandidate{
		Coordinates: domain.Coordinates{Lon: coords[0], Lat: coords[1]},
		Label:       feature.Properties.Label,
		Locality:    feature.Properties.Locality,
		Region:      feature.Properties.Region,
		Confidence:  feature.Properties.Confidence,
		MatchType:   feature.Properties.MatchType,
	}, true, nil
}
