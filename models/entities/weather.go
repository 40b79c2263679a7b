package entities

import "time"

// Field names follow the Open-Meteo variables so dashboards can read them unchanged.
type CurrentConditions struct {
	Time                string  `json:"time"`
	Interval            int     `json:"interval"`
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
}

type DailyForecast struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

type WeatherSnapshot struct {
	City      string            `json:"city"`
	Current   CurrentConditions `json:"current"`
	Daily     DailyForecast     `json:"daily"`
	Timestamp time.Time         `json:"timestamp"`
}
