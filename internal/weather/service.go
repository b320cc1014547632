package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

var (
	// ErrNoLocation is returned when the locator could not produce a position.
	ErrNoLocation = errors.New("device location unavailable")

	// ErrEmptyQuery is returned for a blank city search.
	ErrEmptyQuery = errors.New("city name is empty")
)

// HourlySamples is the length of the hourly strip, 24 hours of 3-hour samples.
const HourlySamples = 8

// Service wires the locator, the weather client and the aggregator together.
// It keeps no state between calls.
type Service struct {
	client  Client
	locator Locator
	zone    *time.Location
}

// NewService creates a new Service. zone is the calendar zone for daily
// grouping; nil means the process-local zone.
func NewService(client Client, locator Locator, zone *time.Location) *Service {
	if zone == nil {
		zone = time.Local
	}
	return &Service{
		client:  client,
		locator: locator,
		zone:    zone,
	}
}

// WithLocator returns a copy of the service resolving positions through l.
func (s *Service) WithLocator(l Locator) *Service {
	cp := *s
	cp.locator = l
	return &cp
}

// Zone returns the calendar zone used for day grouping and display.
func (s *Service) Zone() *time.Location {
	return s.zone
}

// IconURL delegates to the client.
func (s *Service) IconURL(code string) string {
	return s.client.IconURL(code)
}

func (s *Service) locate(ctx context.Context) (Location, error) {
	if s.locator == nil {
		return Location{}, ErrNoLocation
	}
	loc := s.locator.CurrentLocation(ctx)
	if loc == nil {
		return Location{}, ErrNoLocation
	}
	return *loc, nil
}

// Current resolves the device location and fetches its current weather.
func (s *Service) Current(ctx context.Context) (Location, CurrentWeather, error) {
	loc, err := s.locate(ctx)
	if err != nil {
		return Location{}, CurrentWeather{}, err
	}

	log.Printf("DEBUG: fetching current weather for %s", loc.Key())
	cw, err := s.client.CurrentByCoordinates(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return loc, CurrentWeather{}, fmt.Errorf("current weather for %s: %w", loc.Key(), err)
	}
	return loc, cw, nil
}

// ForecastReport is a forecast together with its daily rollup and hourly strip.
type ForecastReport struct {
	Location Location
	Forecast Forecast
	Daily    []DailySummary
	Hourly   []ForecastSample
}

// Forecast resolves the device location, fetches the 5-day / 3-hour forecast
// and aggregates it per calendar day.
func (s *Service) Forecast(ctx context.Context) (ForecastReport, error) {
	loc, err := s.locate(ctx)
	if err != nil {
		return ForecastReport{}, err
	}

	log.Printf("DEBUG: fetching forecast for %s", loc.Key())
	fc, err := s.client.ForecastByCoordinates(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return ForecastReport{Location: loc}, fmt.Errorf("forecast for %s: %w", loc.Key(), err)
	}

	return ForecastReport{
		Location: loc,
		Forecast: fc,
		Daily:    AggregateDaily(fc.Samples, s.zone),
		Hourly:   Hourly(fc.Samples, HourlySamples),
	}, nil
}

// SearchCity fetches the current weather for a city name. The name is trimmed
// before use.
func (s *Service) SearchCity(ctx context.Context, city string) (CurrentWeather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return CurrentWeather{}, ErrEmptyQuery
	}

	cw, err := s.client.CurrentByCity(ctx, city)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("search %q: %w", city, err)
	}
	return cw, nil
}
