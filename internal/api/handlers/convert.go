package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/services"
)

func toServiceAddress(in dto.AddressInput) services.AddressInput {
	out := services.AddressInput{Address: in.Address}
	if in.Latitude != nil && in.Longitude != nil {
		out.Coordinates = &domain.Coordinates{
			Lon: *in.Longitude,
			Lat: *in.Latitude,
		}
	}
	return out
}

func toServiceAddresses(in []dto.AddressInput) []services.AddressInput {
	if len(in) == 0 {
		return nil
	}
	out := make([]services.AddressInput, 0, len(in))
	for _, a := range in {
		out = append(out, toServiceAddress(a))
	}
	return out
}

func toGeoPointResponse(p domain.GeoPoint) dto.GeoPointResponse {
	return dto.GeoPointResponse{
		FormattedAddress: p.FormattedAddress,
		Latitude:         p.Coordinates.Lat,
		Longitude:        p.Coordinates.Lon,
		City:             p.City,
		Region:           p.Region,
		Confidence:       p.Confidence,
		MatchType:        string(p.MatchType),
	}
}

func toGeometry(coords []domain.Coordinates) [][]float64 {
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.CoordsToList())
	}
	return out
}
