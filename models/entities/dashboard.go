package entities

import "time"

type DashboardUpdate struct {
	Xrp       *PriceSnapshot              `json:"xrp"`
	Weather   map[string]*WeatherSnapshot `json:"weather"`
	News      []NewsArticle               `json:"news"`
	Timestamp time.Time                   `json:"timestamp"`
}
