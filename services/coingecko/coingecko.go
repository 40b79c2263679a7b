package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/services/sourcecache"
	"iris-dashboard/utils/dates"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(client *http.Client, cache sourcecache.Service) *Impl {
	return &Impl{
		baseURL:    viper.GetString(constants.CoingeckoBaseURL),
		coinID:     viper.GetString(constants.CoinID),
		vsCurrency: viper.GetString(constants.VsCurrency),
		client:     client,
		cache:      cache,
		location:   dates.LoadLocation(viper.GetString(constants.Timezone)),
		now:        time.Now,
	}
}

func (service *Impl) FetchPrice(ctx context.Context, force bool) *entities.PriceSnapshot {
	snapshot, err := service.fetchSnapshot(ctx)
	if err != nil {
		log.Error().Err(err).Bool("force", force).Msg("Error fetching price data, serving last known value")
		cached, found := sourcecache.Lookup[entities.PriceSnapshot](service.cache, sourcecache.PriceKey)
		if !found {
			metrics.RecordSourceFetch(sourceName, metrics.OutcomeEmpty)
			return nil
		}
		metrics.RecordSourceFetch(sourceName, metrics.OutcomeCached)
		return &cached
	}

	service.cache.Set(sourcecache.PriceKey, *snapshot)
	metrics.RecordSourceFetch(sourceName, metrics.OutcomeFresh)
	return snapshot
}

func (service *Impl) fetchSnapshot(ctx context.Context) (*entities.PriceSnapshot, error) {
	quote, err := service.fetchQuote(ctx)
	if err != nil {
		return nil, err
	}

	history, err := service.fetchHistory(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.PriceSnapshot{
		CurrentPrice:  quote[service.vsCurrency],
		Change24h:     quote[service.vsCurrency+"_24h_change"],
		MarketCap:     quote[service.vsCurrency+"_market_cap"],
		DailyAverages: DailyAverages(history, service.location),
		Timestamp:     service.now(),
	}, nil
}

func (service *Impl) fetchQuote(ctx context.Context) (map[string]float64, error) {
	query := url.Values{}
	query.Set("ids", service.coinID)
	query.Set("vs_currencies", service.vsCurrency)
	query.Set("include_24hr_change", "true")
	query.Set("include_market_cap", "true")
	endpoint := fmt.Sprintf("%s/api/v3/simple/price?%s", service.baseURL, query.Encode())

	var result SimplePriceResponse
	if err := service.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	quote, found := result[service.coinID]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrCoinMissing, service.coinID)
	}
	for _, field := range []string{service.vsCurrency, service.vsCurrency + "_24h_change", service.vsCurrency + "_market_cap"} {
		if _, ok := quote[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrFieldMissing, field)
		}
	}
	return quote, nil
}

func (service *Impl) fetchHistory(ctx context.Context) ([]PriceSample, error) {
	query := url.Values{}
	query.Set("vs_currency", service.vsCurrency)
	query.Set("days", fmt.Sprint(historyDays))
	endpoint := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?%s", service.baseURL, url.PathEscape(service.coinID), query.Encode())

	var result MarketChartResponse
	if err := service.getJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	if result.Prices == nil {
		return nil, ErrHistoryMissing
	}

	samples := make([]PriceSample, 0, len(result.Prices))
	for _, point := range result.Prices {
		if len(point) < 2 {
			return nil, fmt.Errorf("%w: %v", ErrBadSample, point)
		}
		samples = append(samples, PriceSample{At: dates.FromUnixMilli(point[0]), Price: point[1]})
	}
	return samples, nil
}

func (service *Impl) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// DailyAverages buckets samples per calendar day in loc and averages each bucket. The most recent
// day comes first and at most seven days are kept. Days are ordered by date, not by label, so
// "Feb 01" precedes "Jan 31".
func DailyAverages(samples []PriceSample, loc *time.Location) []entities.DailyAverage {
	type bucket struct {
		day   time.Time
		sum   float64
		count int
	}

	buckets := map[time.Time]*bucket{}
	for _, sample := range samples {
		day := dates.StartOfDay(sample.At, loc)
		b, found := buckets[day]
		if !found {
			b = &bucket{day: day}
			buckets[day] = b
		}
		b.sum += sample.Price
		b.count++
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].day.After(ordered[j].day)
	})
	if len(ordered) > maxDailyBars {
		ordered = ordered[:maxDailyBars]
	}

	averages := make([]entities.DailyAverage, 0, len(ordered))
	for _, b := range ordered {
		averages = append(averages, entities.DailyAverage{
			Date:     b.day.Format(dates.DayLabelFormat),
			AvgPrice: b.sum / float64(b.count),
		})
	}
	return averages
}
