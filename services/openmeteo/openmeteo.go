package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(client *http.Client, cache sourcecache.Service) *Impl {
	return &Impl{
		baseURL:  viper.GetString(constants.OpenMeteoBaseURL),
		timezone: viper.GetString(constants.WeatherTimezone),
		client:   client,
		cache:    cache,
		now:      time.Now,
	}
}

func (service *Impl) FetchWeather(ctx context.Context, location constants.Location) *entities.WeatherSnapshot {
	key := sourcecache.WeatherKey(location.Label)

	forecast, err := service.fetchForecast(ctx, location)
	if err != nil {
		log.Error().Err(err).Str(constants.LogCity, location.Label).Msg("Error fetching weather data, serving last known value")
		cached, found := sourcecache.Lookup[entities.WeatherSnapshot](service.cache, key)
		if !found {
			metrics.RecordSourceFetch(sourceName, metrics.OutcomeEmpty)
			return nil
		}
		metrics.RecordSourceFetch(sourceName, metrics.OutcomeCached)
		return &cached
	}

	snapshot := entities.WeatherSnapshot{
		City:      location.Label,
		Current:   *forecast.Current,
		Daily:     *forecast.Daily,
		Timestamp: service.now(),
	}
	service.cache.Set(key, snapshot)
	metrics.RecordSourceFetch(sourceName, metrics.OutcomeFresh)
	return &snapshot
}

func (service *Impl) fetchForecast(ctx context.Context, location constants.Location) (*ForecastResponse, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	query.Set("current", currentVariables)
	query.Set("daily", dailyVariables)
	query.Set("temperature_unit", temperatureUnit)
	query.Set("wind_speed_unit", windSpeedUnit)
	query.Set("precipitation_unit", precipitationUnit)
	query.Set("timezone", service.timezone)
	query.Set("forecast_days", strconv.Itoa(forecastDays))
	endpoint := fmt.Sprintf("%s/v1/forecast?%s", service.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var result ForecastResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Current == nil || result.Daily == nil {
		return nil, ErrIncompleteForecast
	}
	return &result, nil
}
