// Package screens holds the view state of the current weather, forecast and
// search screens. A screen loads through weather.Service and turns every
// failure into an Alert; once closed it ignores results that arrive late.
package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-now/internal/common"
	"github.com/i474232898/weather-now/internal/weather"
)

// Alert is the single user-facing message a screen shows after a failure.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	titleLocation = "Location Access Required"
	titleError    = "Error"
)

// base tracks the lifecycle shared by all screens. Every mutation goes
// through begin or apply so nothing is written after Close.
type base struct {
	mu sync.Mutex

	id         string
	closed     bool
	loading    bool
	refreshing bool
	alert      *Alert
}

func (b *base) init(id string) {
	if id == "" {
		id = uuid.NewString()
	}
	b.id = id
}

// ID identifies the screen instance in logs and responses.
func (b *base) ID() string {
	return b.id
}

// begin marks a load (or a refresh) as in flight. It reports false when the
// screen is already closed.
func (b *base) begin(refresh bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}
	if refresh {
		b.refreshing = true
	} else {
		b.loading = true
	}
	b.alert = nil
	return true
}

// apply runs fn under the screen lock and then clears the in-flight flags,
// unless the screen was closed or ctx canceled while the load was pending.
func (b *base) apply(ctx context.Context, fn func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || ctx.Err() != nil {
		return false
	}
	fn()
	b.loading = false
	b.refreshing = false
	return true
}

// Close disposes the screen. Pending loads finish but their results are dropped.
func (b *base) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// Closed reports whether Close was called.
func (b *base) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// WeatherView is the rendered current-conditions card and detail grid.
type WeatherView struct {
	Location     string  `json:"location"`
	Temperature  string  `json:"temperature"`
	TemperatureC float64 `json:"temperatureC"`
	Condition    string  `json:"condition"`
	Main         string  `json:"main"`
	IconURL      string  `json:"iconUrl"`
	FeelsLike    string  `json:"feelsLike"`
	Humidity     string  `json:"humidity"`
	WindSpeed    string  `json:"windSpeed"`
	WindDir      string  `json:"windDirection"`
	Pressure     string  `json:"pressure"`
	Visibility   string  `json:"visibility"`
	Cloudiness   string  `json:"cloudiness"`
	Sunrise      string  `json:"sunrise"`
	Sunset       string  `json:"sunset"`
}

func newWeatherView(svc *weather.Service, cw weather.CurrentWeather) *WeatherView {
	cond := cw.PrimaryCondition()
	zone := svc.Zone()
	return &WeatherView{
		Location:     cw.Name,
		Temperature:  common.FormatTemperature(cw.Main.Temp),
		TemperatureC: cw.Main.Temp,
		Condition:    common.CapitalizeWords(cond.Description),
		Main:         cond.Main,
		IconURL:      svc.IconURL(cond.Icon),
		FeelsLike:    common.FormatTemperature(cw.Main.FeelsLike),
		Humidity:     fmt.Sprintf("%.0f%%", cw.Main.Humidity),
		WindSpeed:    fmt.Sprintf("%.1f m/s", cw.Wind.Speed),
		WindDir:      common.WindDirection(cw.Wind.Deg),
		Pressure:     fmt.Sprintf("%.0f hPa", cw.Main.Pressure),
		Visibility:   fmt.Sprintf("%.1f km", cw.Visibility/1000),
		Cloudiness:   fmt.Sprintf("%.0f%%", cw.Clouds.All),
		Sunrise:      common.FormatTime(cw.Sys.Sunrise, zone),
		Sunset:       common.FormatTime(cw.Sys.Sunset, zone),
	}
}

func gradientFor(main string, known bool) []string {
	if !known {
		return append([]string(nil), common.DefaultGradient...)
	}
	return common.WeatherGradient(main)
}
