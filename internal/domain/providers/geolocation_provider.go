package providers

import (
	"context"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// GeolocationProvider defines the interface for geolocation services. The
// user's own coordinates come from the client device; this port covers the
// server-side lookups (address geocoding, reverse geocoding).
type GeolocationProvider interface {
	// Geocode converts an address to coordinates
	Geocode(ctx context.Context, address string) (*entities.Coordinates, error)

	// ReverseGeocode converts coordinates to an address
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodedAddress, error)
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	FormattedAddress string
	Street           string
	City             string
	Province         string
	PostalCode       string
	Country          string
	Coordinates      entities.Coordinates
}
