package screens

import (
	"context"
	"errors"
	"log"

	"github.com/i474232898/weather-now/internal/weather"
)

// CurrentScreen shows the current conditions at the device location.
type CurrentScreen struct {
	base

	svc          *weather.Service
	locationName string
	weather      *WeatherView
}

// CurrentState is a snapshot of the current weather screen.
type CurrentState struct {
	ID         string       `json:"id"`
	Loading    bool         `json:"loading"`
	Refreshing bool         `json:"refreshing"`
	Alert      *Alert       `json:"alert,omitempty"`
	Location   string       `json:"location"`
	Weather    *WeatherView `json:"weather"`
	Gradient   []string     `json:"gradient"`
}

func NewCurrentScreen(svc *weather.Service) *CurrentScreen {
	s := &CurrentScreen{svc: svc}
	s.init("")
	s.loading = true
	return s
}

// Load performs the initial fetch.
func (s *CurrentScreen) Load(ctx context.Context) {
	s.fetch(ctx, false)
}

// Refresh refetches on user request.
func (s *CurrentScreen) Refresh(ctx context.Context) {
	s.fetch(ctx, true)
}

func (s *CurrentScreen) fetch(ctx context.Context, refresh bool) {
	if !s.begin(refresh) {
		return
	}

	loc, cw, err := s.svc.Current(ctx)

	applied := s.apply(ctx, func() {
		switch {
		case errors.Is(err, weather.ErrNoLocation):
			s.alert = &Alert{
				Title:   titleLocation,
				Message: "Please enable location access to get weather information for your area.",
			}
		case err != nil:
			log.Printf("ERROR: screen %s: fetching weather: %v", s.id, err)
			s.alert = &Alert{
				Title:   titleError,
				Message: "Failed to fetch weather data. Please try again.",
			}
		default:
			s.locationName = loc.City
			if s.locationName == "" {
				s.locationName = "Unknown Location"
			}
			s.weather = newWeatherView(s.svc, cw)
		}
	})
	if !applied {
		log.Printf("DEBUG: screen %s closed before weather arrived; dropping result", s.id)
	}
}

// State returns a snapshot of the screen.
func (s *CurrentScreen) State() CurrentState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := CurrentState{
		ID:         s.id,
		Loading:    s.loading,
		Refreshing: s.refreshing,
		Alert:      s.alert,
		Location:   s.locationName,
		Weather:    s.weather,
	}
	if s.weather != nil {
		st.Gradient = gradientFor(s.weather.Main, true)
	} else {
		st.Gradient = gradientFor("", false)
	}
	return st
}
