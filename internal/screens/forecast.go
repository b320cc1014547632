package screens

import (
	"context"
	"errors"
	"log"

	"github.com/i474232898/weather-now/internal/common"
	"github.com/i474232898/weather-now/internal/weather"
)

// DayCard renders one daily summary.
type DayCard struct {
	Date      int64   `json:"date"`
	Day       string  `json:"day"`
	DateLabel string  `json:"dateLabel"`
	IconURL   string  `json:"iconUrl"`
	TempMax   string  `json:"tempMax"`
	TempMin   string  `json:"tempMin"`
	TempMaxC  float64 `json:"tempMaxC"`
	TempMinC  float64 `json:"tempMinC"`
	Condition string  `json:"condition"`
}

// HourCard renders one entry of the hourly strip.
type HourCard struct {
	Time        string `json:"time"`
	Temperature string `json:"temperature"`
	IconURL     string `json:"iconUrl"`
	Condition   string `json:"condition"`
}

// ForecastScreen shows the 5-day summary and the next 24 hours.
type ForecastScreen struct {
	base

	svc    *weather.Service
	city   string
	main   string
	days   []DayCard
	hourly []HourCard
	loaded bool
}

// ForecastState is a snapshot of the forecast screen.
type ForecastState struct {
	ID         string     `json:"id"`
	Loading    bool       `json:"loading"`
	Refreshing bool       `json:"refreshing"`
	Alert      *Alert     `json:"alert,omitempty"`
	City       string     `json:"city"`
	Days       []DayCard  `json:"days"`
	Hourly     []HourCard `json:"hourly"`
	Gradient   []string   `json:"gradient"`
}

func NewForecastScreen(svc *weather.Service) *ForecastScreen {
	s := &ForecastScreen{svc: svc}
	s.init("")
	s.loading = true
	return s
}

// Load performs the initial fetch.
func (s *ForecastScreen) Load(ctx context.Context) {
	s.fetch(ctx, false)
}

// Refresh refetches on user request.
func (s *ForecastScreen) Refresh(ctx context.Context) {
	s.fetch(ctx, true)
}

func (s *ForecastScreen) fetch(ctx context.Context, refresh bool) {
	if !s.begin(refresh) {
		return
	}

	report, err := s.svc.Forecast(ctx)

	applied := s.apply(ctx, func() {
		switch {
		case errors.Is(err, weather.ErrNoLocation):
			s.alert = &Alert{
				Title:   titleLocation,
				Message: "Please enable location access to get forecast information.",
			}
		case err != nil:
			log.Printf("ERROR: screen %s: fetching forecast: %v", s.id, err)
			s.alert = &Alert{
				Title:   titleError,
				Message: "Failed to fetch forecast data. Please try again.",
			}
		default:
			s.render(report)
		}
	})
	if !applied {
		log.Printf("DEBUG: screen %s closed before forecast arrived; dropping result", s.id)
	}
}

func (s *ForecastScreen) render(report weather.ForecastReport) {
	zone := s.svc.Zone()

	s.city = report.Forecast.City
	s.loaded = true
	s.main = ""
	if len(report.Forecast.Samples) > 0 {
		s.main = report.Forecast.Samples[0].Main
	}

	s.days = make([]DayCard, 0, len(report.Daily))
	for _, d := range report.Daily {
		s.days = append(s.days, DayCard{
			Date:      d.Timestamp,
			Day:       common.ShortDayName(d.Timestamp, zone),
			DateLabel: common.FormatDate(d.Timestamp, zone),
			IconURL:   s.svc.IconURL(d.Icon),
			TempMax:   common.FormatTemperature(d.TempMax),
			TempMin:   common.FormatTemperature(d.TempMin),
			TempMaxC:  d.TempMax,
			TempMinC:  d.TempMin,
			Condition: common.CapitalizeWords(d.Description),
		})
	}

	s.hourly = make([]HourCard, 0, len(report.Hourly))
	for _, h := range report.Hourly {
		s.hourly = append(s.hourly, HourCard{
			Time:        common.FormatTime(h.Timestamp, zone),
			Temperature: common.FormatTemperature(h.Temp),
			IconURL:     s.svc.IconURL(h.Icon),
			Condition:   h.Description,
		})
	}
}

// State returns a snapshot of the screen.
func (s *ForecastScreen) State() ForecastState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ForecastState{
		ID:         s.id,
		Loading:    s.loading,
		Refreshing: s.refreshing,
		Alert:      s.alert,
		City:       s.city,
		Days:       append(make([]DayCard, 0, len(s.days)), s.days...),
		Hourly:     append(make([]HourCard, 0, len(s.hourly)), s.hourly...),
		Gradient:   gradientFor(s.main, s.loaded),
	}
}
