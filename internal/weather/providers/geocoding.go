package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/weather"
)

// DefaultOpenWeatherGeoURL is the OpenWeatherMap geocoding API.
const DefaultOpenWeatherGeoURL = "https://api.openweathermap.org/geo/1.0"

// OpenWeatherGeocoder implements location.Geocoder with the OpenWeatherMap
// reverse geocoding endpoint. It shares the data API key.
type OpenWeatherGeocoder struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ location.Geocoder = (*OpenWeatherGeocoder)(nil)

func NewOpenWeatherGeocoder(client *http.Client, apiKey string, limiter *rate.Limiter) *OpenWeatherGeocoder {
	return &OpenWeatherGeocoder{
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherGeoURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("openweather-geo"),
	}
}

// WithBaseURL points the geocoder at another endpoint.
func (g *OpenWeatherGeocoder) WithBaseURL(u string) *OpenWeatherGeocoder {
	g.baseURL = u
	return g
}

// Reverse returns the closest named place for the coordinates. An empty
// result list yields an empty address, not an error.
func (g *OpenWeatherGeocoder) Reverse(ctx context.Context, c weather.Coordinates) (location.Address, error) {
	if g.apiKey == "" {
		return location.Address{}, fmt.Errorf("%w: openweather geocoding %v", weather.ErrProvider, errMissingKey)
	}

	values := url.Values{}
	setCoordinates(values, c.Lat, c.Lon)
	values.Set("limit", "1")
	values.Set("appid", g.apiKey)
	u := fmt.Sprintf("%s/reverse?%s", g.baseURL, values.Encode())

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, u)
	if err != nil {
		return location.Address{}, err
	}
	defer resp.Body.Close()

	var payload []struct {
		Name    string `json:"name"`
		State   string `json:"state"`
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return location.Address{}, fmt.Errorf("%w: decode reverse geocoding: %v", weather.ErrProvider, err)
	}
	if len(payload) == 0 {
		return location.Address{}, nil
	}

	return location.Address{
		City:      payload[0].Name,
		Subregion: payload[0].State,
		Country:   payload[0].Country,
	}, nil
}
