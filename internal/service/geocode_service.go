package service

import (
	"context"

	"github.com/user624-47/farmflow-sub000/internal/client"
	"github.com/user624-47/farmflow-sub000/internal/dto"
)

// GeocodeService resolves coordinates to place names through the external
// geocoding provider
type GeocodeService interface {
	Reverse(ctx context.Context, lat, lng float64) (*dto.ReverseGeocodeResponse, error)
}

// geocodeService implements GeocodeService
type geocodeService struct {
	client *client.GeocodingClient
}

// NewGeocodeService creates a GeocodeService
func NewGeocodeService(c *client.GeocodingClient) GeocodeService {
	return &geocodeService{client: c}
}

// Reverse resolves lat,lng to a human-readable place name
func (s *geocodeService) Reverse(ctx context.Context, lat, lng float64) (*dto.ReverseGeocodeResponse, error) {
	place, err := s.client.ReverseGeocode(ctx, lng, lat)
	if err != nil {
		return nil, err
	}
	return &dto.ReverseGeocodeResponse{
		Latitude:  lat,
		Longitude: lng,
		PlaceName: place,
	}, nil
}
