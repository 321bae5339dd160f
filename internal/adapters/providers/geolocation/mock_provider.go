package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/providers"
	apperrors "github.com/indastreet/providerdiscovery/pkg/errors"
)

// mockReverseRadiusKm bounds how far a coordinate may be from a catalog city
// before reverse geocoding gives up.
const mockReverseRadiusKm = 100

// MockGeolocationProvider resolves addresses against the built-in Indonesian
// city catalog. It is the default in development so the service runs without
// an external geocoding account.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode matches the address text against catalog city names and aliases.
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	needle := strings.ToLower(strings.TrimSpace(address))
	if needle == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	if city := entities.FindCityByName(needle); city != nil {
		coords := city.Coordinates
		return &coords, nil
	}

	for i := range entities.Cities {
		city := &entities.Cities[i]
		if strings.Contains(needle, strings.ToLower(city.Name)) || strings.Contains(needle, city.LocationID) {
			coords := city.Coordinates
			return &coords, nil
		}
	}

	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no known city in address %q", address))
}

// ReverseGeocode maps coordinates to the nearest catalog city.
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*providers.GeocodedAddress, error) {
	point := entities.Coordinates{Lat: lat, Lng: lng}
	city := entities.MatchToCity(point, mockReverseRadiusKm)
	if city == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no city near %.4f,%.4f", lat, lng))
	}

	return &providers.GeocodedAddress{
		FormattedAddress: city.Name + ", Indonesia",
		City:             city.LocationID,
		Country:          "Indonesia",
		Coordinates:      point,
	}, nil
}
