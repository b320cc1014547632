// Package location resolves the device position: permission, a single
// position read, then reverse geocoding.
package location

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/i474232898/weather-now/internal/weather"
)

// Unknown is used for place names the geocoder could not provide.
const Unknown = "Unknown"

var (
	ErrPermissionDenied    = errors.New("location permission not granted")
	ErrLocationUnavailable = errors.New("location unavailable")
)

// Address is a reverse-geocoded place.
type Address struct {
	City      string
	Subregion string
	Country   string
}

// Permissions grants access to the device position.
type Permissions interface {
	// Request asks for access, prompting if needed.
	Request(ctx context.Context) (bool, error)
	// Check reports the current grant without prompting.
	Check(ctx context.Context) (bool, error)
}

// Positioner reads the device position once.
type Positioner interface {
	Position(ctx context.Context) (weather.Coordinates, error)
}

// Geocoder turns coordinates into a place.
type Geocoder interface {
	Reverse(ctx context.Context, c weather.Coordinates) (Address, error)
}

// Provider implements weather.Locator.
type Provider struct {
	permissions Permissions
	positioner  Positioner
	geocoder    Geocoder
}

var _ weather.Locator = (*Provider)(nil)

func NewProvider(permissions Permissions, positioner Positioner, geocoder Geocoder) *Provider {
	return &Provider{
		permissions: permissions,
		positioner:  positioner,
		geocoder:    geocoder,
	}
}

// CurrentLocation returns the device location, or nil when it cannot be
// determined. Failures are logged, never returned.
func (p *Provider) CurrentLocation(ctx context.Context) *weather.Location {
	loc, err := p.resolve(ctx)
	if err != nil {
		log.Printf("ERROR: getting current location: %v", err)
		return nil
	}
	return loc
}

func (p *Provider) resolve(ctx context.Context) (*weather.Location, error) {
	if !p.requestPermission(ctx) {
		return nil, ErrPermissionDenied
	}

	if p.positioner == nil {
		return nil, ErrLocationUnavailable
	}
	coords, err := p.positioner.Position(ctx)
	if err != nil {
		return nil, errors.Join(ErrLocationUnavailable, err)
	}

	var addr Address
	if p.geocoder != nil {
		addr, err = p.geocoder.Reverse(ctx, coords)
		if err != nil {
			return nil, err
		}
	}

	return &weather.Location{
		Latitude:  coords.Lat,
		Longitude: coords.Lon,
		City:      firstNonEmpty(addr.City, addr.Subregion, Unknown),
		Country:   firstNonEmpty(addr.Country, Unknown),
	}, nil
}

func (p *Provider) requestPermission(ctx context.Context) bool {
	if p.permissions == nil {
		return false
	}
	ok, err := p.permissions.Request(ctx)
	if err != nil {
		log.Printf("ERROR: requesting location permissions: %v", err)
		return false
	}
	return ok
}

// CheckPermission reports whether location access is granted, without prompting.
func (p *Provider) CheckPermission(ctx context.Context) bool {
	if p.permissions == nil {
		return false
	}
	ok, err := p.permissions.Check(ctx)
	if err != nil {
		log.Printf("ERROR: checking location permissions: %v", err)
		return false
	}
	return ok
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
