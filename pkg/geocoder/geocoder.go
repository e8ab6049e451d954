package geocoder

import (
	"context"
	"errors"

	"googlemaps.github.io/maps"
)

// ErrNoResults is returned when the provider resolves zero locations for an
// address.
var ErrNoResults = errors.New("no geocoding results for address")

// Location is a resolved address
type Location struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

// Geocoder resolves free-text addresses to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}

// GoogleGeocoder implements Geocoder using the Google Maps Geocoding API
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a new GoogleGeocoder
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleGeocoder{client: client}, nil
}

// Geocode resolves the address, returning the first result the way the
// provider ranks them
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*Location, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	return &Location{
		Lat:              results[0].Geometry.Location.Lat,
		Lng:              results[0].Geometry.Location.Lng,
		FormattedAddress: results[0].FormattedAddress,
	}, nil
}
