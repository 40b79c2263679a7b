package entities

import "time"

type DailyAverage struct {
	Date     string  `json:"date"`
	AvgPrice float64 `json:"avgPrice"`
}

type PriceSnapshot struct {
	CurrentPrice  float64        `json:"current_price"`
	Change24h     float64        `json:"change_24h"`
	MarketCap     float64        `json:"market_cap"`
	DailyAverages []DailyAverage `json:"daily_averages"`
	Timestamp     time.Time      `json:"timestamp"`
}
