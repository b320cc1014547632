package location

import (
	"context"

	"github.com/i474232898/weather-now/internal/weather"
)

// StaticPermission is a fixed grant, typically read from configuration.
type StaticPermission bool

func (s StaticPermission) Request(context.Context) (bool, error) { return bool(s), nil }
func (s StaticPermission) Check(context.Context) (bool, error)   { return bool(s), nil }

// StaticPosition is the configured device position. A nil position means the
// device has no fix.
type StaticPosition struct {
	Coords *weather.Coordinates
}

func (s StaticPosition) Position(ctx context.Context) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}
	if s.Coords == nil {
		return weather.Coordinates{}, ErrLocationUnavailable
	}
	return *s.Coords, nil
}

// FixedPosition is a position reported by the client itself.
type FixedPosition weather.Coordinates

func (f FixedPosition) Position(ctx context.Context) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}
	return weather.Coordinates(f), nil
}

// NoopGeocoder never resolves a place; names fall back to Unknown.
type NoopGeocoder struct{}

func (NoopGeocoder) Reverse(context.Context, weather.Coordinates) (Address, error) {
	return Address{}, nil
}

// Factory builds a Provider per request. A position reported by the client
// implies the client already holds the permission; without one the configured
// device permission and position are used.
type Factory struct {
	Permissions Permissions
	Device      Positioner
	Geocoder    Geocoder
}

// For returns the locator for an optional client-reported position.
func (f Factory) For(reported *weather.Coordinates) *Provider {
	if reported != nil {
		return NewProvider(StaticPermission(true), FixedPosition(*reported), f.Geocoder)
	}
	return NewProvider(f.Permissions, f.Device, f.Geocoder)
}
