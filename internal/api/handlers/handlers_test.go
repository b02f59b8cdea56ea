package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"

	"go.uber.org/zap"
)

type stubGeocoder struct {
	candidate ports.GeocodeCandidate
	found     bool
}

func (s *stubGeocoder) Search(ctx context.Context, address string) (ports.GeocodeCandidate, bool, error) {
	return s.candidate, s.found, nil
}

type stubDirections struct {
	route ports.RawRoute
	found bool
}

func (s *stubDirections) Directions(ctx context.Context, coords []domain.Coordinates, profileKey string) (ports.RawRoute, bool, error) {
	return s.route, s.found, nil
}

func confidence(v float64) *float64 { return &v }

func testPipeline(geocoder ports.GeocodingProvider, directions ports.DirectionsProvider) *services.TripPipeline {
	return services.NewTripPipeline(
		nil,
		services.NewGeocodeValidator(nil, geocoder, nil),
		services.NewRouteAssembler(nil, directions),
		services.NewSpeedCostOptimizer(nil, nil),
		domain.NewVehicleCatalog(),
		nil,
	)
}

func workingPipeline() *services.TripPipeline {
	geocoder := &stubGeocoder{
		candidate: ports.GeocodeCandidate{
			Coordinates: domain.Coordinates{Lon: -46.633, Lat: -23.550},
			Label:       "Avenida Paulista, São Paulo",
			Confidence:  confidence(0.9),
			MatchType:   "exact",
		},
		found: true,
	}
	directions := &stubDirections{
		route: ports.RawRoute{
			SummaryDistanceMeters:  96000,
			SummaryDurationSeconds: 3600,
		},
		found: true,
	}
	return testPipeline(geocoder, directions)
}

func TestOptimizeValidation(t *testing.T) {
	h := &OptimizeHandler{Logger: zap.NewNop(), Pipeline: workingPipeline()}

	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"missing vehicle name",
			`{"route": {"origin": {"address": "a"}, "destination": {"address": "b"}}, "fuel_price": 5.5, "driver_cost_per_hour": 25}`,
			"vehicle_name is required",
		},
		{
			"zero fuel price",
			`{"route": {"origin": {"address": "a"}, "destination": {"address": "b"}}, "vehicle_name": "Van", "fuel_price": 0, "driver_cost_per_hour": 25}`,
			"fuel_price must be positive",
		},
		{
			"negative driver cost",
			`{"route": {"origin": {"address": "a"}, "destination": {"address": "b"}}, "vehicle_name": "Van", "fuel_price": 5.5, "driver_cost_per_hour": -1}`,
			"driver_cost_per_hour must be positive",
		},
		{
			"unknown field",
			`{"vehicle_name": "Van", "fuel_price": 5.5, "driver_cost_per_hour": 25, "bogus": true}`,
			"invalid json body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Optimize(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tc.want {
				t.Fatalf("error = %q, want %q", body["error"], tc.want)
			}
		})
	}
}

func TestOptimizeSuccess(t *testing.T) {
	h := &OptimizeHandler{Logger: zap.NewNop(), Pipeline: workingPipeline()}

	body := `{
		"route": {
			"origin": {"address": "Avenida Paulista, São Paulo"},
			"destination": {"address": "Centro, Campinas"}
		},
		"vehicle_name": "Fiorino 01",
		"vehicle": "fiorino",
		"fuel_price": 5.5,
		"driver_cost_per_hour": 25
	}`
	req := httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Optimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		OptimalSpeedKmh float64 `json:"optimal_speed_kmh"`
		CostCurve       []any   `json:"cost_curve"`
		RouteInfo       struct {
			VehicleName string  `json:"vehicle_name"`
			DistanceKm  float64 `json:"distance_km"`
		} `json:"route_info"`
		Scenario struct {
			VehicleKey string `json:"vehicle_key"`
		} `json:"scenario"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if len(res.CostCurve) != 50 {
		t.Fatalf("cost curve samples = %d, want 50", len(res.CostCurve))
	}
	if res.OptimalSpeedKmh <= 0 {
		t.Fatalf("optimal speed = %v, want positive", res.OptimalSpeedKmh)
	}
	if res.RouteInfo.VehicleName != "Fiorino 01" || res.RouteInfo.DistanceKm != 96 {
		t.Fatalf("route info = %+v, want the request vehicle and 96 km", res.RouteInfo)
	}
	if res.Scenario.VehicleKey != "fiorino" {
		t.Fatalf("scenario vehicle = %q, want fiorino", res.Scenario.VehicleKey)
	}
}

func TestGeocodeErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		geocoder   *stubGeocoder
		address    string
		wantStatus int
		wantCode   string
	}{
		{
			"too short",
			&stubGeocoder{},
			"abc",
			http.StatusBadRequest,
			"invalid_address_format",
		},
		{
			"not found",
			&stubGeocoder{found: false},
			"Rua Inexistente 999",
			http.StatusNotFound,
			"geocoding_not_found",
		},
		{
			"low confidence",
			&stubGeocoder{
				candidate: ports.GeocodeCandidate{
					Coordinates: domain.Coordinates{Lon: -46.633, Lat: -23.550},
					Confidence:  confidence(0.2),
					MatchType:   "exact",
				},
				found: true,
			},
			"Rua Duvidosa, São Paulo",
			http.StatusUnprocessableEntity,
			"geocoding_very_low_quality",
		},
		{
			"outside region",
			&stubGeocoder{
				candidate: ports.GeocodeCandidate{
					Coordinates: domain.Coordinates{Lon: -9.139, Lat: 38.722},
					Confidence:  confidence(0.9),
					MatchType:   "exact",
				},
				found: true,
			},
			"Lisboa, Portugal",
			http.StatusUnprocessableEntity,
			"geocoding_outside_region",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &GeocodeHandler{Logger: zap.NewNop(), Pipeline: testPipeline(tc.geocoder, &stubDirections{})}

			body, _ := json.Marshal(map[string]string{"address": tc.address})
			req := httptest.NewRequest(http.MethodPost, "/geocode", strings.NewReader(string(body)))
			rec := httptest.NewRecorder()

			h.Resolve(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
			var payload map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if payload["error"] != tc.wantCode {
				t.Fatalf("error code = %v, want %q", payload["error"], tc.wantCode)
			}
		})
	}
}

func TestGeocodeSuccess(t *testing.T) {
	h := &GeocodeHandler{Logger: zap.NewNop(), Pipeline: workingPipeline()}

	req := httptest.NewRequest(http.MethodPost, "/geocode", strings.NewReader(`{"address": "Avenida Paulista, São Paulo"}`))
	rec := httptest.NewRecorder()

	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		FormattedAddress string   `json:"formatted_address"`
		Latitude         float64  `json:"latitude"`
		Longitude        float64  `json:"longitude"`
		Confidence       *float64 `json:"confidence"`
		MatchType        string   `json:"match_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.FormattedAddress != "Avenida Paulista, São Paulo" {
		t.Fatalf("formatted address = %q", res.FormattedAddress)
	}
	if res.Latitude != -23.550 || res.Longitude != -46.633 {
		t.Fatalf("coordinates = (%v, %v), want (-23.550, -46.633)", res.Latitude, res.Longitude)
	}
	if res.Confidence == nil || *res.Confidence != 0.9 || res.MatchType != "exact" {
		t.Fatalf("quality metadata = %+v, want confidence 0.9 exact", res)
	}
}

func TestRouteComputeMethodGuard(t *testing.T) {
	h := &RouteHandler{Logger: zap.NewNop(), Pipeline: workingPipeline()}

	req := httptest.NewRequest(http.MethodGet, "/route", nil)
	rec := httptest.NewRecorder()

	h.Compute(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("allow header = %q, want POST", rec.Header().Get("Allow"))
	}
}

func TestHistoryLimitValidation(t *testing.T) {
	h := &HistoryHandler{Logger: zap.NewNop(), Pipeline: workingPipeline()}

	for _, limit := range []string{"0", "-5", "101", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/history?limit="+limit, nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestHistoryEmptyWithoutStore(t *testing.T) {
	h := &HistoryHandler{Logger: zap.NewNop(), Pipeline: workingPipeline()}

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res struct {
		History []any `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(res.History) != 0 {
		t.Fatalf("history = %d entries, want 0", len(res.History))
	}
}
