package common

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FormatTemperature rounds to whole degrees: 21.5 -> "22°".
func FormatTemperature(temp float64) string {
	return fmt.Sprintf("%d°", int(math.Round(temp)))
}

func unixIn(ts int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc)
}

// FormatDate renders a unix timestamp as "Mon, Jan 2".
func FormatDate(ts int64, loc *time.Location) string {
	return unixIn(ts, loc).Format("Mon, Jan 2")
}

// FormatTime renders a unix timestamp as "03:04 PM".
func FormatTime(ts int64, loc *time.Location) string {
	return unixIn(ts, loc).Format("03:04 PM")
}

// DayName returns the full weekday name, e.g. "Monday".
func DayName(ts int64, loc *time.Location) string {
	return unixIn(ts, loc).Weekday().String()
}

// ShortDayName returns the abbreviated weekday name, e.g. "Mon".
func ShortDayName(ts int64, loc *time.Location) string {
	return unixIn(ts, loc).Format("Mon")
}

// CapitalizeWords upper-cases the first letter of every space separated word.
func CapitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// WeatherColor returns the accent colour for a condition name.
func WeatherColor(condition string) string {
	c := strings.ToLower(condition)
	switch {
	case HasAny(c, "clear"):
		return "#FFD700"
	case HasAny(c, "cloud"):
		return "#B0C4DE"
	case HasAny(c, "rain"):
		return "#4682B4"
	case HasAny(c, "thunder"):
		return "#483D8B"
	case HasAny(c, "snow"):
		return "#F0F8FF"
	case HasAny(c, "mist", "fog"):
		return "#D3D3D3"
	default:
		return "#87CEEB"
	}
}

// DefaultGradient is the background used before any weather is known.
var DefaultGradient = []string{"#4A90E2", "#87CEEB", "#FFD700"}

// WeatherGradient returns the background gradient for a condition name.
func WeatherGradient(condition string) []string {
	c := strings.ToLower(condition)
	switch {
	case HasAny(c, "clear"):
		return []string{"#4A90E2", "#87CEEB", "#FFD700"}
	case HasAny(c, "cloud"):
		return []string{"#606c88", "#3f4c6b", "#8e9eab"}
	case HasAny(c, "rain"):
		return []string{"#2c3e50", "#3498db", "#34495e"}
	case HasAny(c, "thunder"):
		return []string{"#141E30", "#243B55", "#2c3e50"}
	case HasAny(c, "snow"):
		return []string{"#E6DADA", "#F0F8FF", "#B0C4DE"}
	case HasAny(c, "mist", "fog"):
		return []string{"#757F9A", "#D7DDE8", "#B0C4DE"}
	default:
		return []string{"#56CCF2", "#2F80ED", "#4A90E2"}
	}
}

var compass = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection maps degrees to one of eight compass points.
func WindDirection(degrees float64) string {
	i := int(math.Round(degrees/45)) % 8
	if i < 0 {
		i += 8
	}
	return compass[i]
}

// UVIndexDescription classifies a UV index.
func UVIndexDescription(uv float64) string {
	switch {
	case uv <= 2:
		return "Low"
	case uv <= 5:
		return "Moderate"
	case uv <= 7:
		return "High"
	case uv <= 10:
		return "Very High"
	default:
		return "Extreme"
	}
}

// AirQualityDescription classifies an air quality index.
func AirQualityDescription(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
