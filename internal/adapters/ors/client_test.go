package ors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuel-route-service/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", srv.URL, "BR", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "", "BR", "", nil); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestSearchParsesBestCandidate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/search" {
			t.Errorf("path = %q, want /geocode/search", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("text") != "Av. Paulista, São Paulo" {
			t.Errorf("text = %q, want normalized address", q.Get("text"))
		}
		if q.Get("boundary.country") != "BR" || q.Get("size") != "1" {
			t.Errorf("query = %v, want country restriction and size=1", q)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("authorization = %q, want api key", r.Header.Get("Authorization"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"features": [{
				"geometry": {"coordinates": [-46.633, -23.550]},
				"properties": {
					"label": "Avenida Paulista, São Paulo, SP, Brazil",
					"locality": "São Paulo",
					"region": "São Paulo",
					"confidence": 0.9,
					"match_type": "exact"
				}
			}]
		}`))
	})

	candidate, found, err := client.Search(context.Background(), "Av.  Paulista,   São Paulo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a candidate")
	}
	if candidate.Coordinates.Lon != -46.633 || candidate.Coordinates.Lat != -23.550 {
		t.Fatalf("coordinates = %+v, want lon=-46.633 lat=-23.550", candidate.Coordinates)
	}
	if candidate.Locality != "São Paulo" || candidate.MatchType != "exact" {
		t.Fatalf("candidate = %+v, want locality and match type from properties", candidate)
	}
	if candidate.Confidence == nil || *candidate.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", candidate.Confidence)
	}
}

func TestSearchNoFeatures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": []}`))
	})

	_, found, err := client.Search(context.Background(), "Rua Inexistente 999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no candidate for empty feature list")
	}
}

func TestSearchRateLimitedMapsToProviderUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	})

	_, _, err := client.Search(context.Background(), "Av. Paulista, São Paulo")
	var unavailable *domain.ProviderUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want ProviderUnavailableError", err)
	}
	if unavailable.Op != "geocode" {
		t.Fatalf("op = %q, want geocode", unavailable.Op)
	}
}

func TestSearchClientErrorIsNotUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, _, err := client.Search(context.Background(), "Av. Paulista, São Paulo")
	if err == nil {
		t.Fatal("expected an error")
	}
	var unavailable *domain.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		t.Fatalf("400 must not classify as ProviderUnavailableError: %v", err)
	}
}

func TestDirectionsParsesRoute(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/directions/driving-car" {
			t.Errorf("path = %q, want /v2/directions/driving-car", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		w.Write([]byte(`{
			"routes": [{
				"summary": {"distance": 96000, "duration": 3600},
				"segments": [{
					"distance": 96000,
					"duration": 3600,
					"steps": [
						{"instruction": "Head north", "name": "Avenida Paulista"},
						{"instruction": "Turn left", "name": "Rua Augusta"}
					]
				}],
				"geometry": {"coordinates": [[-46.633, -23.550], [-46.8, -23.2], [-47.063, -22.906]]}
			}]
		}`))
	})

	coords := []domain.Coordinates{
		{Lon: -46.633, Lat: -23.550},
		{Lon: -47.063, Lat: -22.906},
	}
	route, found, err := client.Directions(context.Background(), coords, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a route")
	}

	if route.SummaryDistanceMeters != 96000 || route.SummaryDurationSeconds != 3600 {
		t.Fatalf("summary = %v m / %v s, want 96000 / 3600",
			route.SummaryDistanceMeters, route.SummaryDurationSeconds)
	}
	if len(route.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(route.Segments))
	}
	descr := route.Segments[0].Description
	if !strings.Contains(descr, "Avenida Paulista") || !strings.Contains(descr, "Rua Augusta") {
		t.Fatalf("description = %q, want every step name included", descr)
	}
	if len(route.Instructions) != 2 {
		t.Fatalf("instructions = %d, want 2", len(route.Instructions))
	}
	if len(route.GeometryCoords) != 3 {
		t.Fatalf("geometry points = %d, want 3", len(route.GeometryCoords))
	}
}

func TestDirectionsDescriptionCoversLaterSteps(t *testing.T) {
	// An urban marker may appear only deep into a segment, or only in an
	// instruction; the description must still carry it.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"routes": [{
				"summary": {"distance": 96000, "duration": 3600},
				"segments": [{
					"distance": 96000,
					"duration": 3600,
					"steps": [
						{"instruction": "Head north", "name": "BR-116"},
						{"instruction": "Enter the city center", "name": ""},
						{"instruction": "Continue", "name": "Inner City Ring"}
					]
				}],
				"geometry": {"coordinates": [[-46.633, -23.550], [-47.063, -22.906]]}
			}]
		}`))
	})

	coords := []domain.Coordinates{
		{Lon: -46.633, Lat: -23.550},
		{Lon: -47.063, Lat: -22.906},
	}
	route, found, err := client.Directions(context.Background(), coords, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a route")
	}

	descr := strings.ToLower(route.Segments[0].Description)
	if !strings.Contains(descr, "city") {
		t.Fatalf("description = %q, want the late-step city marker included", route.Segments[0].Description)
	}
}

func TestDirectionsEncodedGeometryLeftUndecoded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"routes": [{
				"summary": {"distance": 96000, "duration": 3600},
				"geometry": "u{~vFvyys@fS]"
			}]
		}`))
	})

	coords := []domain.Coordinates{
		{Lon: -46.633, Lat: -23.550},
		{Lon: -47.063, Lat: -22.906},
	}
	route, found, err := client.Directions(context.Background(), coords, "driving-car")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a route")
	}
	if len(route.GeometryCoords) != 0 {
		t.Fatalf("geometry coords = %d, want 0 for encoded polyline", len(route.GeometryCoords))
	}
	if route.GeometryEncoded == "" {
		t.Fatal("expected the encoded polyline to be preserved")
	}
}

func TestDirectionsNoRoutes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes": []}`))
	})

	coords := []domain.Coordinates{
		{Lon: -46.633, Lat: -23.550},
		{Lon: -47.063, Lat: -22.906},
	}
	_, found, err := client.Directions(context.Background(), coords, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no route for empty route list")
	}
}

func TestDirectionsRequiresTwoCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, _, err := client.Directions(context.Background(), []domain.Coordinates{{Lon: -46.6, Lat: -23.5}}, "")
	if err == nil {
		t.Fatal("expected an error for a single coordinate")
	}
}
