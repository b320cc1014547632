package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-now/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string `yaml:"openWeatherApiKey"`

	// GoogleGeocoderAPIKey switches reverse geocoding to Google when set.
	GoogleGeocoderAPIKey string `yaml:"googleGeocoderApiKey"`

	HTTPTimeout time.Duration `yaml:"httpTimeout" validate:"gt=0"`

	// ProviderRPS caps outbound provider calls per second (0 = unlimited).
	ProviderRPS   float64 `yaml:"providerRps" validate:"gte=0"`
	ProviderBurst int     `yaml:"providerBurst" validate:"gte=0"`

	// Device stands in for the handset: its permission grant and position
	// are used when a request reports no coordinates of its own.
	LocationPermission bool                 `yaml:"locationPermission"`
	DevicePosition     *weather.Coordinates `yaml:"devicePosition"`

	// Timezone names the calendar zone used for daily grouping ("" = local).
	Timezone string `yaml:"timezone"`

	// Search sessions.
	RecentSearchLimit    int           `yaml:"recentSearchLimit" validate:"gte=1,lte=20"`
	RecentSearchMaxAge   time.Duration `yaml:"recentSearchMaxAge" validate:"gte=0"`
	SessionPruneInterval time.Duration `yaml:"sessionPruneInterval" validate:"gte=0"`

	Port string `yaml:"port" validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults. When
// WEATHER_CONFIG_FILE is set, the YAML file it names is applied first and the
// environment overrides it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := Default()

	if path := os.Getenv("WEATHER_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *AppConfig {
	return &AppConfig{
		HTTPTimeout:          10 * time.Second,
		ProviderRPS:          1, // free tier: 60 calls/minute
		ProviderBurst:        5,
		RecentSearchLimit:    5,
		RecentSearchMaxAge:   24 * time.Hour,
		SessionPruneInterval: 15 * time.Minute,
		Port:                 "8080",
	}
}

func (cfg *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (cfg *AppConfig) applyEnv() error {
	cfg.OpenWeatherAPIKey = getenvDefault("OPENWEATHER_API_KEY", cfg.OpenWeatherAPIKey)
	cfg.GoogleGeocoderAPIKey = getenvDefault("GOOGLE_GEOCODER_API_KEY", cfg.GoogleGeocoderAPIKey)
	cfg.Timezone = getenvDefault("WEATHER_TIMEZONE", cfg.Timezone)
	cfg.Port = getenvDefault("PORT", cfg.Port)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return err
	}
	if cfg.RecentSearchMaxAge, err = getenvDuration("RECENT_SEARCH_MAX_AGE", cfg.RecentSearchMaxAge); err != nil {
		return err
	}
	if cfg.SessionPruneInterval, err = getenvDuration("SESSION_PRUNE_INTERVAL", cfg.SessionPruneInterval); err != nil {
		return err
	}

	if v := os.Getenv("PROVIDER_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid PROVIDER_RPS: %w", err)
		}
		cfg.ProviderRPS = rps
	}
	cfg.ProviderBurst = getenvInt("PROVIDER_BURST", cfg.ProviderBurst)
	cfg.RecentSearchLimit = getenvInt("RECENT_SEARCH_LIMIT", cfg.RecentSearchLimit)

	if v := os.Getenv("LOCATION_PERMISSION"); v != "" {
		granted, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOCATION_PERMISSION: %w", err)
		}
		cfg.LocationPermission = granted
	}

	pos, err := loadDevicePosition()
	if err != nil {
		return err
	}
	if pos != nil {
		cfg.DevicePosition = pos
	}
	return nil
}

func loadDevicePosition() (*weather.Coordinates, error) {
	latStr := os.Getenv("DEVICE_LATITUDE")
	lonStr := os.Getenv("DEVICE_LONGITUDE")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, fmt.Errorf("DEVICE_LATITUDE and DEVICE_LONGITUDE must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_LATITUDE: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_LONGITUDE: %w", err)
	}
	return &weather.Coordinates{Lat: lat, Lon: lon}, nil
}

// Validate checks field ranges.
func (cfg *AppConfig) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if p := cfg.DevicePosition; p != nil {
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return errors.New("invalid configuration: device position out of range")
		}
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location resolves Timezone.
func (cfg *AppConfig) Location() (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(cfg.Timezone)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
