package coingecko

import (
	"context"
	"errors"
	"iris-dashboard/models/entities"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"time"
)

const (
	sourceName   = "price"
	historyDays  = 7
	maxDailyBars = 7
)

var (
	ErrCoinMissing    = errors.New("coin missing from price response")
	ErrFieldMissing   = errors.New("price field missing from response")
	ErrHistoryMissing = errors.New("price history missing from response")
	ErrBadSample      = errors.New("malformed price sample")
)

type Service interface {
	// FetchPrice returns a fresh snapshot, or the last good one when the API fails.
	// force is accepted for callers asking for a refresh; it does not bypass anything yet.
	FetchPrice(ctx context.Context, force bool) *entities.PriceSnapshot
}

type Impl struct {
	baseURL    string
	coinID     string
	vsCurrency string
	client     *http.Client
	cache      sourcecache.Service
	location   *time.Location
	now        func() time.Time
}

// SimplePriceResponse maps coin id to quote fields, e.g. {"ripple": {"usd": 0.6, "usd_24h_change": 1.2}}.
type SimplePriceResponse map[string]map[string]float64

type MarketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

type PriceSample struct {
	At    time.Time
	Price float64
}
