package weather

import (
	"strings"
	"time"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the provider's "weather" array.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainReadings holds the "main" block shared by current and forecast payloads.
type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type Clouds struct {
	All float64 `json:"all"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentWeather mirrors the consumed fields of the provider's current weather payload.
// Units are metric.
type CurrentWeather struct {
	Coord      Coordinates  `json:"coord"`
	Weather    []Condition  `json:"weather"`
	Main       MainReadings `json:"main"`
	Visibility float64      `json:"visibility"`
	Wind       Wind         `json:"wind"`
	Clouds     Clouds       `json:"clouds"`
	Dt         int64        `json:"dt"`
	Sys        Sys          `json:"sys"`
	Timezone   int          `json:"timezone"`
	Name       string       `json:"name"`
}

// PrimaryCondition returns the first condition entry, or an empty one when the
// provider sent none.
func (c CurrentWeather) PrimaryCondition() Condition {
	if len(c.Weather) == 0 {
		return Condition{}
	}
	return c.Weather[0]
}

// ForecastSample is one 3-hour-resolution observation of the forecast list.
type ForecastSample struct {
	Timestamp   int64   `json:"dt"`
	Temp        float64 `json:"temp"`
	TempMax     float64 `json:"tempMax"`
	TempMin     float64 `json:"tempMin"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Main        string  `json:"main"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Time returns the sample's timestamp in the given zone.
func (s ForecastSample) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(s.Timestamp, 0).In(loc)
}

// Forecast is the normalized 5-day / 3-hour forecast for one place.
// Samples are ordered by Timestamp ascending, as delivered by the provider.
type Forecast struct {
	City    string           `json:"city"`
	Country string           `json:"country"`
	Samples []ForecastSample `json:"samples"`
}

// DailySummary is the per-calendar-day rollup of forecast samples.
type DailySummary struct {
	Timestamp   int64   `json:"date"`
	Icon        string  `json:"icon"`
	TempMax     float64 `json:"tempMax"`
	TempMin     float64 `json:"tempMin"`
	Description string  `json:"condition"`
}

// Location is a resolved device position with its reverse-geocoded place names.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
}

// Coordinates returns the position part of the location.
func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}

// Key returns a canonical string key for the location, used in logs.
func (l Location) Key() string {
	return strings.TrimSpace(l.City) + ":" + strings.TrimSpace(l.Country)
}
