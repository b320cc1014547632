package location

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/weather"
)

type failingPermissions struct{}

func (failingPermissions) Request(context.Context) (bool, error) { return false, errors.New("boom") }
func (failingPermissions) Check(context.Context) (bool, error)   { return false, errors.New("boom") }

type stubGeocoder struct {
	addr Address
	err  error
}

func (g stubGeocoder) Reverse(context.Context, weather.Coordinates) (Address, error) {
	return g.addr, g.err
}

var oslo = &weather.Coordinates{Lat: 59.91, Lon: 10.75}

func TestCurrentLocationPermissionDenied(t *testing.T) {
	p := NewProvider(StaticPermission(false), StaticPosition{Coords: oslo}, NoopGeocoder{})
	assert.Nil(t, p.CurrentLocation(context.Background()))

	p = NewProvider(failingPermissions{}, StaticPosition{Coords: oslo}, NoopGeocoder{})
	assert.Nil(t, p.CurrentLocation(context.Background()))
	assert.False(t, p.CheckPermission(context.Background()))
}

func TestCurrentLocationNoFix(t *testing.T) {
	p := NewProvider(StaticPermission(true), StaticPosition{}, NoopGeocoder{})
	assert.Nil(t, p.CurrentLocation(context.Background()))

	_, err := p.resolve(context.Background())
	assert.ErrorIs(t, err, ErrLocationUnavailable)
}

func TestCurrentLocationDefaultsToUnknown(t *testing.T) {
	p := NewProvider(StaticPermission(true), StaticPosition{Coords: oslo}, NoopGeocoder{})

	loc := p.CurrentLocation(context.Background())
	require.NotNil(t, loc)
	assert.Equal(t, weather.Location{Latitude: 59.91, Longitude: 10.75, City: Unknown, Country: Unknown}, *loc)
	assert.True(t, p.CheckPermission(context.Background()))
}

func TestCurrentLocationCityFallsBackToSubregion(t *testing.T) {
	p := NewProvider(StaticPermission(true), FixedPosition{Lat: 1, Lon: 2},
		stubGeocoder{addr: Address{Subregion: "Akershus", Country: "Norway"}})

	loc := p.CurrentLocation(context.Background())
	require.NotNil(t, loc)
	assert.Equal(t, "Akershus", loc.City)
	assert.Equal(t, "Norway", loc.Country)
	assert.Equal(t, 1.0, loc.Latitude)
}

func TestCurrentLocationGeocoderError(t *testing.T) {
	p := NewProvider(StaticPermission(true), StaticPosition{Coords: oslo},
		stubGeocoder{err: errors.New("quota exceeded")})
	assert.Nil(t, p.CurrentLocation(context.Background()))
}

func TestCurrentLocationCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProvider(StaticPermission(true), StaticPosition{Coords: oslo}, NoopGeocoder{})
	assert.Nil(t, p.CurrentLocation(ctx))
}

func TestGoogleGeocoderMapsFirstAddress(t *testing.T) {
	g := NewGoogleGeocoder("key")
	g.reverse = func(l geocoder.Location) ([]geocoder.Address, error) {
		assert.Equal(t, 59.91, l.Latitude)
		return []geocoder.Address{
			{City: "Oslo", County: "Oslo kommune", Country: "Norway"},
			{City: "ignored"},
		}, nil
	}

	addr, err := g.Reverse(context.Background(), *oslo)
	require.NoError(t, err)
	assert.Equal(t, Address{City: "Oslo", Subregion: "Oslo kommune", Country: "Norway"}, addr)

	g.reverse = func(geocoder.Location) ([]geocoder.Address, error) { return nil, nil }
	addr, err = g.Reverse(context.Background(), *oslo)
	require.NoError(t, err)
	assert.Equal(t, Address{}, addr)
}

func TestFactory(t *testing.T) {
	f := Factory{
		Permissions: StaticPermission(false),
		Device:      StaticPosition{Coords: oslo},
		Geocoder:    stubGeocoder{addr: Address{City: "Oslo", Country: "Norway"}},
	}

	assert.Nil(t, f.For(nil).CurrentLocation(context.Background()))

	loc := f.For(&weather.Coordinates{Lat: 60.39, Lon: 5.32}).CurrentLocation(context.Background())
	require.NotNil(t, loc)
	assert.Equal(t, 60.39, loc.Latitude)
	assert.Equal(t, "Oslo", loc.City)
}
