package screens

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/weather"
)

type fakeClient struct {
	current  weather.CurrentWeather
	forecast weather.Forecast
	err      error

	// started/release let a test hold a call in flight.
	started chan struct{}
	release chan struct{}
}

func (c *fakeClient) wait() {
	if c.started != nil {
		close(c.started)
		<-c.release
	}
}

func (c *fakeClient) CurrentByCoordinates(context.Context, float64, float64) (weather.CurrentWeather, error) {
	c.wait()
	return c.current, c.err
}

func (c *fakeClient) ForecastByCoordinates(context.Context, float64, float64) (weather.Forecast, error) {
	c.wait()
	return c.forecast, c.err
}

func (c *fakeClient) CurrentByCity(_ context.Context, name string) (weather.CurrentWeather, error) {
	c.wait()
	if c.err != nil {
		return weather.CurrentWeather{}, c.err
	}
	cw := c.current
	cw.Name = name
	return cw, nil
}

func (c *fakeClient) IconURL(code string) string { return "https://icons/" + code }

type fakeLocator struct{ loc *weather.Location }

func (l fakeLocator) CurrentLocation(context.Context) *weather.Location { return l.loc }

var (
	utc   = time.UTC
	paris = &weather.Location{Latitude: 48.85, Longitude: 2.35, City: "Paris", Country: "FR"}

	clearSky = weather.CurrentWeather{
		Coord:      weather.Coordinates{Lat: 48.8534, Lon: 2.3488},
		Weather:    []weather.Condition{{Main: "Clear", Description: "clear sky", Icon: "01d"}},
		Main:       weather.MainReadings{Temp: 21.5, FeelsLike: 20.4, Humidity: 48, Pressure: 1016},
		Visibility: 10000,
		Wind:       weather.Wind{Speed: 3.62, Deg: 90},
		Clouds:     weather.Clouds{All: 5},
		Sys: weather.Sys{
			Sunrise: time.Date(2025, 6, 1, 4, 5, 0, 0, time.UTC).Unix(),
			Sunset:  time.Date(2025, 6, 1, 19, 45, 0, 0, time.UTC).Unix(),
		},
		Name: "Paris",
	}
)

func TestCurrentScreenLoad(t *testing.T) {
	svc := weather.NewService(&fakeClient{current: clearSky}, fakeLocator{paris}, utc)
	s := NewCurrentScreen(svc)
	assert.True(t, s.State().Loading)

	s.Load(context.Background())
	st := s.State()

	assert.False(t, st.Loading)
	assert.Nil(t, st.Alert)
	assert.Equal(t, "Paris", st.Location)
	require.NotNil(t, st.Weather)
	assert.Equal(t, "22°", st.Weather.Temperature)
	assert.Equal(t, "Clear Sky", st.Weather.Condition)
	assert.Equal(t, "https://icons/01d", st.Weather.IconURL)
	assert.Equal(t, "48%", st.Weather.Humidity)
	assert.Equal(t, "3.6 m/s", st.Weather.WindSpeed)
	assert.Equal(t, "E", st.Weather.WindDir)
	assert.Equal(t, "1016 hPa", st.Weather.Pressure)
	assert.Equal(t, "10.0 km", st.Weather.Visibility)
	assert.Equal(t, "04:05 AM", st.Weather.Sunrise)
	assert.Equal(t, "07:45 PM", st.Weather.Sunset)
	assert.Equal(t, []string{"#4A90E2", "#87CEEB", "#FFD700"}, st.Gradient)
}

func TestCurrentScreenNoLocation(t *testing.T) {
	svc := weather.NewService(&fakeClient{current: clearSky}, fakeLocator{nil}, utc)
	s := NewCurrentScreen(svc)

	s.Load(context.Background())
	st := s.State()

	require.NotNil(t, st.Alert)
	assert.Equal(t, "Location Access Required", st.Alert.Title)
	assert.Nil(t, st.Weather)
	assert.False(t, st.Loading)
}

func TestCurrentScreenProviderError(t *testing.T) {
	client := &fakeClient{current: clearSky}
	svc := weather.NewService(client, fakeLocator{paris}, utc)
	s := NewCurrentScreen(svc)
	s.Load(context.Background())

	client.err = fmt.Errorf("%w: timeout", weather.ErrProvider)
	s.Refresh(context.Background())
	st := s.State()

	require.NotNil(t, st.Alert)
	assert.Equal(t, "Failed to fetch weather data. Please try again.", st.Alert.Message)
	assert.False(t, st.Refreshing)
	// The previous data stays on screen.
	assert.NotNil(t, st.Weather)
}

func TestCurrentScreenUnknownCity(t *testing.T) {
	loc := *paris
	loc.City = ""
	svc := weather.NewService(&fakeClient{current: clearSky}, fakeLocator{&loc}, utc)
	s := NewCurrentScreen(svc)

	s.Load(context.Background())
	assert.Equal(t, "Unknown Location", s.State().Location)
}

func TestCurrentScreenDropsResultAfterClose(t *testing.T) {
	client := &fakeClient{
		current: clearSky,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := weather.NewService(client, fakeLocator{paris}, utc)
	s := NewCurrentScreen(svc)

	done := make(chan struct{})
	go func() {
		s.Load(context.Background())
		close(done)
	}()

	<-client.started
	s.Close()
	close(client.release)
	<-done

	st := s.State()
	assert.True(t, s.Closed())
	assert.Nil(t, st.Weather)
	assert.Nil(t, st.Alert)
}

func TestCurrentScreenCanceledContext(t *testing.T) {
	svc := weather.NewService(&fakeClient{current: clearSky}, fakeLocator{paris}, utc)
	s := NewCurrentScreen(svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Load(ctx)

	assert.Nil(t, s.State().Weather)
}

func forecastSamples(start time.Time, n int) []weather.ForecastSample {
	out := make([]weather.ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		icon := "01d"
		if i%8 != 0 {
			icon = "10d"
		}
		out = append(out, weather.ForecastSample{
			Timestamp:   start.Add(time.Duration(i*3) * time.Hour).Unix(),
			Temp:        float64(i),
			TempMax:     float64(10 + i%8),
			TempMin:     float64(i % 8),
			Main:        "Rain",
			Icon:        icon,
			Description: "light rain",
		})
	}
	return out
}

func TestForecastScreenLoad(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, utc) // Monday
	client := &fakeClient{forecast: weather.Forecast{City: "Paris", Samples: forecastSamples(start, 40)}}
	svc := weather.NewService(client, fakeLocator{paris}, utc)
	s := NewForecastScreen(svc)

	s.Load(context.Background())
	st := s.State()

	assert.Nil(t, st.Alert)
	assert.Equal(t, "Paris", st.City)
	require.Len(t, st.Days, 5)
	assert.Equal(t, DayCard{
		Date:      start.Unix(),
		Day:       "Mon",
		DateLabel: "Mon, Jun 2",
		IconURL:   "https://icons/01d",
		TempMax:   "17°",
		TempMin:   "0°",
		TempMaxC:  17,
		TempMinC:  0,
		Condition: "Light Rain",
	}, st.Days[0])
	assert.Equal(t, "Fri", st.Days[4].Day)
	require.Len(t, st.Hourly, 8)
	assert.Equal(t, "12:00 AM", st.Hourly[0].Time)
	assert.Equal(t, "09:00 PM", st.Hourly[7].Time)
	assert.Equal(t, "#2c3e50", st.Gradient[0])
}

func TestForecastScreenErrors(t *testing.T) {
	svc := weather.NewService(&fakeClient{}, fakeLocator{nil}, utc)
	s := NewForecastScreen(svc)
	s.Load(context.Background())
	require.NotNil(t, s.State().Alert)
	assert.Equal(t, "Please enable location access to get forecast information.", s.State().Alert.Message)

	svc = weather.NewService(&fakeClient{err: weather.ErrProvider}, fakeLocator{paris}, utc)
	s = NewForecastScreen(svc)
	s.Load(context.Background())
	st := s.State()
	require.NotNil(t, st.Alert)
	assert.Equal(t, "Failed to fetch forecast data. Please try again.", st.Alert.Message)
	assert.NotNil(t, st.Days)
	assert.Empty(t, st.Days)
	assert.Equal(t, []string{"#4A90E2", "#87CEEB", "#FFD700"}, st.Gradient)
}

func TestSearchScreenBlankQuery(t *testing.T) {
	client := &fakeClient{current: clearSky}
	svc := weather.NewService(client, nil, utc)
	s := NewSearchScreen(svc, store.NewMemoryStore(5, time.Hour), "")

	s.Search(context.Background(), "   ")
	st := s.State()

	require.NotNil(t, st.Alert)
	assert.Equal(t, "Please enter a city name", st.Alert.Message)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, store.DefaultRecentSearches, st.Recent)
}

func TestSearchScreenSuccessUpdatesRecent(t *testing.T) {
	recent := store.NewMemoryStore(5, time.Hour)
	svc := weather.NewService(&fakeClient{current: clearSky}, nil, utc)
	s := NewSearchScreen(svc, recent, "session-1")

	s.Search(context.Background(), " Berlin ")
	st := s.State()

	assert.Nil(t, st.Alert)
	require.NotNil(t, st.Weather)
	assert.Equal(t, "Berlin", st.Weather.Location)
	assert.Equal(t, "48.85°, 2.35°", st.Weather.Coordinates)
	assert.Equal(t, []string{"Berlin", "New York", "London", "Tokyo", "Paris"}, st.Recent)

	// The session survives the screen.
	again := NewSearchScreen(svc, recent, "session-1")
	assert.Equal(t, "Berlin", again.State().Recent[0])
}

func TestSearchScreenNotFoundClearsResult(t *testing.T) {
	client := &fakeClient{current: clearSky}
	svc := weather.NewService(client, nil, utc)
	s := NewSearchScreen(svc, store.NewMemoryStore(5, time.Hour), "")

	s.Search(context.Background(), "Paris")
	require.NotNil(t, s.State().Weather)

	client.err = fmt.Errorf("%w: %w", weather.ErrProvider, weather.ErrNotFound)
	s.Search(context.Background(), "Atlantis")
	st := s.State()

	require.NotNil(t, st.Alert)
	assert.Equal(t, "City not found. Please try again.", st.Alert.Message)
	assert.Nil(t, st.Weather)
	assert.NotContains(t, st.Recent, "Atlantis")
}

func TestSearchScreenClear(t *testing.T) {
	svc := weather.NewService(&fakeClient{current: clearSky}, nil, utc)
	s := NewSearchScreen(svc, store.NewMemoryStore(5, time.Hour), "")

	s.Search(context.Background(), "Paris")
	s.Clear()
	st := s.State()

	assert.Empty(t, st.Query)
	assert.Nil(t, st.Weather)
}

func TestSearchScreenClosed(t *testing.T) {
	client := &fakeClient{current: clearSky}
	svc := weather.NewService(client, nil, utc)
	s := NewSearchScreen(svc, store.NewMemoryStore(5, time.Hour), "")
	s.Close()

	s.Search(context.Background(), "Paris")
	assert.Nil(t, s.State().Weather)
	assert.Empty(t, s.State().Query)
}
