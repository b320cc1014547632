package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/screens"
	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/weather"
)

// SessionHeader carries the search session id between requests.
const SessionHeader = "X-Session-ID"

var validate = validator.New()

// SearchSessions is the recent searches store behind the search screen.
type SearchSessions interface {
	screens.RecentSearches
	Get(id string) ([]string, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Each request
// opens a screen, loads it and renders its state; the screen is closed when
// the handler returns.
func RegisterRoutes(app *fiber.App, service *weather.Service, locators location.Factory, sessions SearchSessions) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCoordinatesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		screen := screens.NewCurrentScreen(service.WithLocator(locators.For(q.coordinates())))
		defer screen.Close()

		screen.Load(c.UserContext())
		return c.JSON(screen.State())
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		q, err := parseCoordinatesQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		screen := screens.NewForecastScreen(service.WithLocator(locators.For(q.coordinates())))
		defer screen.Close()

		screen.Load(c.UserContext())
		return c.JSON(screen.State())
	})

	v1.Get("/weather/search", func(c *fiber.Ctx) error {
		// Fiber reuses request buffers; the city may outlive the handler in the session store.
		q := searchQuery{City: strings.Clone(c.Query("city"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		screen := screens.NewSearchScreen(service, sessions, strings.Clone(c.Get(SessionHeader)))
		defer screen.Close()

		screen.Search(c.UserContext(), q.City)
		c.Set(SessionHeader, screen.ID())
		return c.JSON(screen.State())
	})

	v1.Get("/weather/recent", func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, SessionHeader+" header is required")
		}

		cities, err := sessions.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no search session for id")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load recent searches")
		}

		return c.JSON(fiber.Map{
			"sessionId":      id,
			"recentSearches": cities,
		})
	})

	v1.Get("/weather/icon/:code", func(c *fiber.Ctx) error {
		q := iconQuery{Code: c.Params("code")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"code": q.Code,
			"url":  service.IconURL(q.Code),
		})
	})
}

// coordinatesQuery holds an optional client-reported position.
type coordinatesQuery struct {
	Lat *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon *float64 `validate:"omitempty,gte=-180,lte=180"`
}

func (q coordinatesQuery) coordinates() *weather.Coordinates {
	if q.Lat == nil || q.Lon == nil {
		return nil
	}
	return &weather.Coordinates{Lat: *q.Lat, Lon: *q.Lon}
}

func parseCoordinatesQuery(c *fiber.Ctx) (coordinatesQuery, error) {
	var q coordinatesQuery

	lat, err := parseOptionalFloat(c.Query("lat"))
	if err != nil {
		return q, errors.New("invalid lat: must be a number")
	}
	lon, err := parseOptionalFloat(c.Query("lon"))
	if err != nil {
		return q, errors.New("invalid lon: must be a number")
	}
	q.Lat, q.Lon = lat, lon

	if (q.Lat == nil) != (q.Lon == nil) {
		return q, errors.New("lat and lon must be provided together")
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// searchQuery holds the city search parameters. A blank city is not rejected
// here; the search screen answers it with an alert.
type searchQuery struct {
	City string `validate:"max=100"`
}

type iconQuery struct {
	Code string `validate:"required,alphanum,max=8"`
}
