package aggregator

import (
	"context"
	"fmt"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/services/coingecko"
	"iris-dashboard/services/openmeteo"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	irving     = constants.Location{Label: "Irving", Latitude: 32.814, Longitude: -96.9489}
	lewisville = constants.Location{Label: "Lewisville", Latitude: 33.0462, Longitude: -96.9942}
)

type fakePrice struct{ panics bool }

func (f fakePrice) FetchPrice(ctx context.Context, force bool) *entities.PriceSnapshot {
	if f.panics {
		panic("price connector exploded")
	}
	return &entities.PriceSnapshot{CurrentPrice: 0.6}
}

type fakeWeather struct{}

func (fakeWeather) FetchWeather(ctx context.Context, location constants.Location) *entities.WeatherSnapshot {
	if location.Label == "Lewisville" {
		return nil
	}
	return &entities.WeatherSnapshot{City: location.Label}
}

type fakeNews struct{ articles []entities.NewsArticle }

func (f fakeNews) FetchArticles(ctx context.Context) []entities.NewsArticle {
	return f.articles
}

func TestAggregate_JoinsAllConnectors(t *testing.T) {
	now := time.Date(2025, time.January, 14, 12, 0, 0, 0, time.UTC)
	service := New(fakePrice{}, fakeWeather{}, fakeNews{articles: []entities.NewsArticle{{Title: "a"}}}, []constants.Location{irving, lewisville})
	service.now = func() time.Time { return now }

	update, err := service.Aggregate(context.Background(), false)

	require.NoError(t, err)
	require.NotNil(t, update.Xrp)
	assert.Equal(t, 0.6, update.Xrp.CurrentPrice)
	require.Contains(t, update.Weather, "Irving")
	require.Contains(t, update.Weather, "Lewisville")
	assert.Equal(t, "Irving", update.Weather["Irving"].City)
	assert.Nil(t, update.Weather["Lewisville"])
	assert.Len(t, update.News, 1)
	assert.Equal(t, now, update.Timestamp)
}

func TestAggregate_NilNewsBecomesEmptyList(t *testing.T) {
	service := New(fakePrice{}, fakeWeather{}, fakeNews{}, nil)

	update, err := service.Aggregate(context.Background(), false)

	require.NoError(t, err)
	assert.NotNil(t, update.News)
	assert.Empty(t, update.Weather)
}

func TestAggregate_PanicProducesNoUpdate(t *testing.T) {
	service := New(fakePrice{panics: true}, fakeWeather{}, fakeNews{}, []constants.Location{irving})

	update, err := service.Aggregate(context.Background(), false)

	assert.Nil(t, update)
	assert.ErrorIs(t, err, ErrCycleAborted)
}

type upstream struct {
	*httptest.Server
	weatherDown atomic.Bool
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/simple/price", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ripple":{"usd":0.65,"usd_24h_change":2.5,"usd_market_cap":37000000000}}`))
	})
	mux.HandleFunc("/api/v3/coins/ripple/market_chart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[[1736812800000,0.50],[1736856000000,0.70]]}`))
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		if u.weatherDown.Load() && r.URL.Query().Get("latitude") == "32.814" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"current":{"temperature_2m":%s},"daily":{"time":["2025-01-14"]}}`, r.URL.Query().Get("latitude"))
	})
	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Close)
	return u
}

func newWiredService(t *testing.T, u *upstream) *Impl {
	viper.Set(constants.CoingeckoBaseURL, u.URL)
	viper.Set(constants.OpenMeteoBaseURL, u.URL)
	viper.Set(constants.CoinID, "ripple")
	viper.Set(constants.VsCurrency, "usd")
	viper.Set(constants.Timezone, "UTC")
	t.Cleanup(viper.Reset)

	cache := sourcecache.New(nil)
	newsService := fakeNews{articles: []entities.NewsArticle{{Title: "a", URL: "https://example.com/a"}}}
	return New(coingecko.New(u.Client(), cache), openmeteo.New(u.Client(), cache), newsService, []constants.Location{irving, lewisville})
}

func TestAggregate_FailedConnectorKeepsPreviousValue(t *testing.T) {
	u := newUpstream(t)
	service := newWiredService(t, u)

	first, err := service.Aggregate(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, first.Weather["Irving"])

	u.weatherDown.Store(true)
	second, err := service.Aggregate(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, first.Weather["Irving"], second.Weather["Irving"])
	require.NotNil(t, second.Weather["Lewisville"])
	assert.Equal(t, 33.0462, second.Weather["Lewisville"].Current.Temperature)
	require.NotNil(t, second.Xrp)
	require.Len(t, second.Xrp.DailyAverages, 1)
	assert.InDelta(t, 0.60, second.Xrp.DailyAverages[0].AvgPrice, 1e-9)
}

func TestAggregate_IdempotentModuloTimestamps(t *testing.T) {
	u := newUpstream(t)
	service := newWiredService(t, u)

	first, err := service.Aggregate(context.Background(), false)
	require.NoError(t, err)
	second, err := service.Aggregate(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, withoutTimestamps(first), withoutTimestamps(second))
}

func withoutTimestamps(update *entities.DashboardUpdate) entities.DashboardUpdate {
	stripped := entities.DashboardUpdate{Weather: map[string]*entities.WeatherSnapshot{}, News: update.News}
	if update.Xrp != nil {
		price := *update.Xrp
		price.Timestamp = time.Time{}
		stripped.Xrp = &price
	}
	for label, snapshot := range update.Weather {
		if snapshot == nil {
			stripped.Weather[label] = nil
			continue
		}
		weather := *snapshot
		weather.Timestamp = time.Time{}
		stripped.Weather[label] = &weather
	}
	return stripped
}
