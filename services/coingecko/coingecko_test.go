package coingecko

import (
	"context"
	"iris-dashboard/models/entities"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capturedAt = time.Date(2025, time.January, 14, 18, 0, 0, 0, time.UTC)

const (
	quoteBody   = `{"ripple":{"usd":0.65,"usd_24h_change":2.5,"usd_market_cap":37000000000}}`
	historyBody = `{"prices":[[1736812800000,0.50],[1736856000000,0.70],[1736726400000,0.40]]}`
)

func newTestServer(t *testing.T, quote, history *string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/simple/price", func(w http.ResponseWriter, r *http.Request) {
		if *quote == "" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.Equal(t, "ripple", r.URL.Query().Get("ids"))
		w.Write([]byte(*quote))
	})
	mux.HandleFunc("/api/v3/coins/ripple/market_chart", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Write([]byte(*history))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(srv *httptest.Server) *Impl {
	return &Impl{
		baseURL:    srv.URL,
		coinID:     "ripple",
		vsCurrency: "usd",
		client:     srv.Client(),
		cache:      sourcecache.New(nil),
		location:   time.UTC,
		now:        func() time.Time { return capturedAt },
	}
}

func TestDailyAverages_SameDayMean(t *testing.T) {
	samples := []PriceSample{
		{At: time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC), Price: 0.50},
		{At: time.Date(2025, time.January, 14, 12, 0, 0, 0, time.UTC), Price: 0.70},
	}

	averages := DailyAverages(samples, time.UTC)

	require.Len(t, averages, 1)
	assert.Equal(t, "Jan 14", averages[0].Date)
	assert.InDelta(t, 0.60, averages[0].AvgPrice, 1e-9)
}

func TestDailyAverages_MostRecentFirstAndCapped(t *testing.T) {
	var samples []PriceSample
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 10; day++ {
		for hour := 0; hour < 24; hour += 6 {
			samples = append(samples, PriceSample{At: start.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour), Price: float64(day)})
		}
	}

	averages := DailyAverages(samples, time.UTC)

	require.Len(t, averages, 7)
	assert.Equal(t, "Jan 10", averages[0].Date)
	assert.Equal(t, "Jan 04", averages[6].Date)
	for i := 1; i < len(averages); i++ {
		assert.Greater(t, averages[i-1].Date, averages[i].Date)
	}
	assert.InDelta(t, 9.0, averages[0].AvgPrice, 1e-9)
}

func TestDailyAverages_AcrossMonthBoundary(t *testing.T) {
	samples := []PriceSample{
		{At: time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC), Price: 0.40},
		{At: time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC), Price: 0.80},
	}

	averages := DailyAverages(samples, time.UTC)

	require.Len(t, averages, 2)
	assert.Equal(t, "Feb 01", averages[0].Date)
	assert.Equal(t, "Jan 31", averages[1].Date)
}

func TestDailyAverages_Empty(t *testing.T) {
	assert.Empty(t, DailyAverages(nil, time.UTC))
}

func TestDailyAverages_UsesLocation(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	samples := []PriceSample{{At: time.Date(2025, time.January, 14, 3, 0, 0, 0, time.UTC), Price: 1}}

	averages := DailyAverages(samples, chicago)

	require.Len(t, averages, 1)
	assert.Equal(t, "Jan 13", averages[0].Date)
}

func TestFetchPrice_Fresh(t *testing.T) {
	quote, history := quoteBody, historyBody
	service := newTestService(newTestServer(t, &quote, &history))

	snapshot := service.FetchPrice(context.Background(), false)

	require.NotNil(t, snapshot)
	assert.Equal(t, 0.65, snapshot.CurrentPrice)
	assert.Equal(t, 2.5, snapshot.Change24h)
	assert.Equal(t, 37000000000.0, snapshot.MarketCap)
	assert.Equal(t, capturedAt, snapshot.Timestamp)
	require.Len(t, snapshot.DailyAverages, 2)
	assert.Equal(t, entities.DailyAverage{Date: "Jan 14", AvgPrice: 0.60}.Date, snapshot.DailyAverages[0].Date)
	assert.InDelta(t, 0.60, snapshot.DailyAverages[0].AvgPrice, 1e-9)
	assert.Equal(t, "Jan 13", snapshot.DailyAverages[1].Date)

	cached, found := sourcecache.Lookup[entities.PriceSnapshot](service.cache, sourcecache.PriceKey)
	require.True(t, found)
	assert.Equal(t, *snapshot, cached)
}

func TestFetchPrice_FailureWithoutCacheIsNil(t *testing.T) {
	quote, history := "", historyBody
	service := newTestService(newTestServer(t, &quote, &history))

	assert.Nil(t, service.FetchPrice(context.Background(), true))
}

func TestFetchPrice_FailureServesLastKnownValue(t *testing.T) {
	quote, history := quoteBody, historyBody
	service := newTestService(newTestServer(t, &quote, &history))

	first := service.FetchPrice(context.Background(), false)
	require.NotNil(t, first)

	quote = ""
	service.now = func() time.Time { return capturedAt.Add(time.Hour) }
	second := service.FetchPrice(context.Background(), false)

	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestFetchPrice_IncompleteResponsesAreFailures(t *testing.T) {
	tests := []struct {
		name    string
		quote   string
		history string
	}{
		{name: "coin missing", quote: `{"bitcoin":{"usd":1,"usd_24h_change":1,"usd_market_cap":1}}`, history: historyBody},
		{name: "field missing", quote: `{"ripple":{"usd":1}}`, history: historyBody},
		{name: "history missing", quote: quoteBody, history: `{}`},
		{name: "bad sample", quote: quoteBody, history: `{"prices":[[1736812800000]]}`},
		{name: "not json", quote: quoteBody, history: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, history := tt.quote, tt.history
			service := newTestService(newTestServer(t, &quote, &history))

			assert.Nil(t, service.FetchPrice(context.Background(), false))
			_, found := service.cache.Get(sourcecache.PriceKey)
			assert.False(t, found)
		})
	}
}

func TestFetchPrice_EmptyHistory(t *testing.T) {
	quote, history := quoteBody, `{"prices":[]}`
	service := newTestService(newTestServer(t, &quote, &history))

	snapshot := service.FetchPrice(context.Background(), false)

	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.DailyAverages)
}
