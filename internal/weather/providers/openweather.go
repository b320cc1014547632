package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-now/internal/weather"
)

const (
	// DefaultOpenWeatherURL is the OpenWeatherMap 2.5 data API.
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

	// DefaultIconURL is the pictogram template; %s is the icon code.
	DefaultIconURL = "https://openweathermap.org/img/wn/%s@4x.png"
)

// OpenWeatherClient implements weather.Client for OpenWeatherMap.
type OpenWeatherClient struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Client = (*OpenWeatherClient)(nil)

// NewOpenWeatherClient creates a client for the OpenWeatherMap data API.
// limiter may be nil.
func NewOpenWeatherClient(client *http.Client, apiKey string, limiter *rate.Limiter) *OpenWeatherClient {
	return &OpenWeatherClient{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("openweather"),
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func (p *OpenWeatherClient) WithBaseURL(u string) *OpenWeatherClient {
	p.baseURL = u
	return p
}

func (p *OpenWeatherClient) Name() string {
	return p.name
}

// IconURL returns the 4x pictogram URL for an icon code.
func (p *OpenWeatherClient) IconURL(code string) string {
	return fmt.Sprintf(DefaultIconURL, code)
}

// CurrentByCoordinates fetches current conditions at lat/lon.
func (p *OpenWeatherClient) CurrentByCoordinates(ctx context.Context, lat, lon float64) (weather.CurrentWeather, error) {
	values := url.Values{}
	setCoordinates(values, lat, lon)

	var payload weather.CurrentWeather
	if err := p.get(ctx, "/weather", values, &payload); err != nil {
		return weather.CurrentWeather{}, err
	}
	return payload, nil
}

// CurrentByCity fetches current conditions for a city name.
func (p *OpenWeatherClient) CurrentByCity(ctx context.Context, name string) (weather.CurrentWeather, error) {
	values := url.Values{}
	values.Set("q", name)

	var payload weather.CurrentWeather
	if err := p.get(ctx, "/weather", values, &payload); err != nil {
		return weather.CurrentWeather{}, err
	}
	return payload, nil
}

// forecastPayload is the consumed part of the /forecast response.
type forecastPayload struct {
	List []struct {
		Dt      int64                `json:"dt"`
		Main    weather.MainReadings `json:"main"`
		Weather []weather.Condition  `json:"weather"`
		Wind    weather.Wind         `json:"wind"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

// ForecastByCoordinates fetches the 5-day / 3-hour forecast at lat/lon.
func (p *OpenWeatherClient) ForecastByCoordinates(ctx context.Context, lat, lon float64) (weather.Forecast, error) {
	values := url.Values{}
	setCoordinates(values, lat, lon)

	var payload forecastPayload
	if err := p.get(ctx, "/forecast", values, &payload); err != nil {
		return weather.Forecast{}, err
	}

	fc := weather.Forecast{
		City:    payload.City.Name,
		Country: payload.City.Country,
		Samples: make([]weather.ForecastSample, 0, len(payload.List)),
	}
	for _, item := range payload.List {
		var cond weather.Condition
		if len(item.Weather) > 0 {
			cond = item.Weather[0]
		}
		fc.Samples = append(fc.Samples, weather.ForecastSample{
			Timestamp:   item.Dt,
			Temp:        item.Main.Temp,
			TempMax:     item.Main.TempMax,
			TempMin:     item.Main.TempMin,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Main:        cond.Main,
			Icon:        cond.Icon,
			Description: cond.Description,
		})
	}
	return fc, nil
}

func (p *OpenWeatherClient) get(ctx context.Context, path string, values url.Values, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: openweather %v", weather.ErrProvider, errMissingKey)
	}

	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", weather.ErrProvider, path, err)
	}
	return nil
}

func setCoordinates(values url.Values, lat, lon float64) {
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
}
