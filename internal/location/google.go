package location

import (
	"context"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-now/internal/weather"
)

// geocoder keeps its API key in a package variable.
var googleMu sync.Mutex

// GoogleGeocoder reverse-geocodes with the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey  string
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

var _ Geocoder = (*GoogleGeocoder)(nil)

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:  apiKey,
		reverse: geocoder.GeocodingReverse,
	}
}

// Reverse returns the first address Google reports for the coordinates.
func (g *GoogleGeocoder) Reverse(ctx context.Context, c weather.Coordinates) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}

	googleMu.Lock()
	geocoder.ApiKey = g.apiKey
	addresses, err := g.reverse(geocoder.Location{
		Latitude:  c.Lat,
		Longitude: c.Lon,
	})
	googleMu.Unlock()
	if err != nil {
		return Address{}, err
	}
	if len(addresses) == 0 {
		return Address{}, nil
	}

	a := addresses[0]
	return Address{
		City:      a.City,
		Subregion: a.County,
		Country:   a.Country,
	}, nil
}
