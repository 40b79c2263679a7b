package openmeteo

import (
	"context"
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"time"
)

const (
	sourceName        = "weather"
	currentVariables  = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m"
	dailyVariables    = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"
	forecastDays      = 7
	temperatureUnit   = "fahrenheit"
	windSpeedUnit     = "mph"
	precipitationUnit = "inch"
)

var ErrIncompleteForecast = errors.New("forecast response lacks current or daily data")

type Service interface {
	// FetchWeather returns a fresh snapshot for the location, or the last good one for its label.
	FetchWeather(ctx context.Context, location constants.Location) *entities.WeatherSnapshot
}

type Impl struct {
	baseURL  string
	timezone string
	client   *http.Client
	cache    sourcecache.Service
	now      func() time.Time
}

type ForecastResponse struct {
	Current *entities.CurrentConditions `json:"current"`
	Daily   *entities.DailyForecast     `json:"daily"`
}
