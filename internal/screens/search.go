package screens

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/i474232898/weather-now/internal/weather"
)

// RecentSearches persists the recent city list of a search session.
type RecentSearches interface {
	Recent(id string) []string
	Add(id, city string) []string
}

// SearchResult is the current weather of a searched city.
type SearchResult struct {
	WeatherView
	Coordinates string `json:"coordinates"`
}

// SearchScreen looks up the current weather for a city name and keeps the
// session's recent searches.
type SearchScreen struct {
	base

	svc     *weather.Service
	recent  RecentSearches
	query   string
	cities  []string
	weather *SearchResult
}

// SearchState is a snapshot of the search screen.
type SearchState struct {
	ID       string        `json:"sessionId"`
	Loading  bool          `json:"loading"`
	Alert    *Alert        `json:"alert,omitempty"`
	Query    string        `json:"query"`
	Recent   []string      `json:"recentSearches"`
	Weather  *SearchResult `json:"weather"`
	Gradient []string      `json:"gradient"`
}

// NewSearchScreen opens the search screen for a session. An empty sessionID
// starts a new session.
func NewSearchScreen(svc *weather.Service, recent RecentSearches, sessionID string) *SearchScreen {
	s := &SearchScreen{svc: svc, recent: recent}
	s.init(sessionID)
	s.cities = recent.Recent(s.id)
	return s
}

// Search fetches the current weather for city.
func (s *SearchScreen) Search(ctx context.Context, city string) {
	city = strings.TrimSpace(city)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = city
	if city == "" {
		s.alert = &Alert{Title: titleError, Message: "Please enter a city name"}
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if !s.begin(false) {
		return
	}

	cw, err := s.svc.SearchCity(ctx, city)

	applied := s.apply(ctx, func() {
		if err != nil {
			if !errors.Is(err, weather.ErrNotFound) {
				log.Printf("ERROR: screen %s: searching weather: %v", s.id, err)
			}
			s.alert = &Alert{Title: titleError, Message: "City not found. Please try again."}
			s.weather = nil
			return
		}

		s.weather = &SearchResult{
			WeatherView: *newWeatherView(s.svc, cw),
			Coordinates: fmt.Sprintf("%.2f°, %.2f°", cw.Coord.Lat, cw.Coord.Lon),
		}
		s.cities = s.recent.Add(s.id, city)
	})
	if !applied {
		log.Printf("DEBUG: screen %s closed before search finished; dropping result", s.id)
	}
}

// Clear resets the query and the result.
func (s *SearchScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.query = ""
	s.weather = nil
	s.alert = nil
}

// State returns a snapshot of the screen.
func (s *SearchScreen) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SearchState{
		ID:      s.id,
		Loading: s.loading,
		Alert:   s.alert,
		Query:   s.query,
		Recent:  append([]string(nil), s.cities...),
		Weather: s.weather,
	}
	if s.weather != nil {
		st.Gradient = gradientFor(s.weather.Main, true)
	} else {
		st.Gradient = gradientFor("", false)
	}
	return st
}
