package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Format       string      `json:"format"`
	Instructions bool        `json:"instructions"`
	Maneuvers    bool        `json:"maneuvers"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Instruction string `json:"instruction"`
				Name        string `json:"name"`
			} `json:"steps"`
		} `json:"segments"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

// Directions requests a route along the ordered coordinate list from the
// OpenRouteService directions endpoint for the given vehicle profile.
func (c *Client) Directions(
	ctx context.Context,
	coords []domain.Coordinates,
	profileKey string,
) (_ ports.RawRoute, _ bool, err error) {
	defer obs.Time(c.logger, "ors.directions")(&err)

	if len(coords) < 2 {
		return ports.RawRoute{}, false, errors.New("directions: at least two coordinates are required")
	}
	if profileKey == "" {
		profileKey = c.defaultProfile
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, profileKey)

	locations := make([][]float64, 0, len(coords))
	for _, co := range coords {
		locations = append(locations, co.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  locations,
		Format:       "json",
		Instructions: true,
		Maneuvers:    true,
	})
	if err != nil {
		return ports.RawRoute{}, false, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.RawRoute{}, false, fmt.Errorf("directions request: %w", err)
	}

	resp, err := c.do("directions", req)
	if err != nil {
		return ports.RawRoute{}, false, fmt.Errorf("execute directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RawRoute{}, false, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return ports.RawRoute{}, false, nil
	}

	route := decoded.Routes[0]

	out := ports.RawRoute{
		SummaryDistanceMeters:  route.Summary.Distance,
		SummaryDurationSeconds: route.Summary.Duration,
	}

	for _, seg := range route.Segments {
		// The description concatenates every step's name and instruction
		// so downstream way-type classification sees the whole segment
		// text, not just the first street name.
		descrParts := make([]string, 0, 2*len(seg.Steps))
		instructions := make([]string, 0, len(seg.Steps))
		for _, step := range seg.Steps {
			if step.Instruction != "" {
				instructions = append(instructions, step.Instruction)
				descrParts = append(descrParts, step.Instruction)
			}
			if step.Name != "" {
				descrParts = append(descrParts, step.Name)
			}
		}

		out.Segments = append(out.Segments, ports.RouteSegment{
			DistanceMeters:  seg.Distance,
			DurationSeconds: seg.Duration,
			Description:     strings.Join(descrParts, " "),
		})
		out.Instructions = append(out.Instructions, instructions...)
	}

	out.GeometryCoords, out.GeometryEncoded = parseGeometry(route.Geometry)

	return out, true, nil
}

// parseGeometry handles the provider's two geometry shapes: a GeoJSON-style
// object with a coordinate list, or an opaque encoded polyline string (left
// undecoded here; the route assembler applies the straight-line fallback).
func parseGeometry(raw json.RawMessage) ([]domain.Coordinates, string) {
	if len(raw) == 0 {
		return nil, ""
	}

	var structured struct {
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && len(structured.Coordinates) > 0 {
		coords := make([]domain.Coordinates, 0, len(structured.Coordinates))
		for _, pair := range structured.Coordinates {
			if len(pair) < 2 {
				continue
			}
			coords = append(coords, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
		}
		return coords, ""
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		return nil, encoded
	}

	return nil, ""
}
