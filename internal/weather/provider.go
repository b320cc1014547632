package weather

import (
	"context"
	"errors"
)

var (
	// ErrProvider is returned for any failed call to the weather provider:
	// transport errors and non-success statuses alike.
	ErrProvider = errors.New("weather provider request failed")

	// ErrNotFound is returned when the provider does not know the requested
	// place. Errors matching ErrNotFound also match ErrProvider.
	ErrNotFound = errors.New("location not found")
)

// Client abstracts the weather data source used by the screens.
// Calls are single shot: no retries and no caching.
type Client interface {
	CurrentByCoordinates(ctx context.Context, lat, lon float64) (CurrentWeather, error)
	ForecastByCoordinates(ctx context.Context, lat, lon float64) (Forecast, error)
	CurrentByCity(ctx context.Context, name string) (CurrentWeather, error)

	// IconURL returns the hosted pictogram for an icon code. It never touches the network.
	IconURL(code string) string
}

// Locator resolves the device location. A nil result means the location is
// not available (permission denied, no fix, ...); the caller owns the messaging.
type Locator interface {
	CurrentLocation(ctx context.Context) *Location
}
