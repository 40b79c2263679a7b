package aggregator

import (
	"context"
	"fmt"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/services/coingecko"
	"iris-dashboard/services/news"
	"iris-dashboard/services/openmeteo"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

func New(price coingecko.Service, weather openmeteo.Service, newsService news.Service, locations []constants.Location) *Impl {
	return &Impl{
		price:     price,
		weather:   weather,
		news:      newsService,
		locations: locations,
		now:       time.Now,
	}
}

func (service *Impl) Aggregate(ctx context.Context, force bool) (*entities.DashboardUpdate, error) {
	defer metrics.ObserveCycle(time.Now())

	var (
		wg       conc.WaitGroup
		price    *entities.PriceSnapshot
		articles []entities.NewsArticle
		weathers = make([]*entities.WeatherSnapshot, len(service.locations))
	)

	wg.Go(func() {
		price = service.price.FetchPrice(ctx, force)
	})
	for i, location := range service.locations {
		wg.Go(func() {
			weathers[i] = service.weather.FetchWeather(ctx, location)
		})
	}
	wg.Go(func() {
		articles = service.news.FetchArticles(ctx)
	})

	if recovered := wg.WaitAndRecover(); recovered != nil {
		log.Error().Str("panic", fmt.Sprint(recovered.Value)).Msg("Error fetching all data, no update this cycle")
		return nil, fmt.Errorf("%w: %v", ErrCycleAborted, recovered.Value)
	}

	update := &entities.DashboardUpdate{
		Xrp:       price,
		Weather:   make(map[string]*entities.WeatherSnapshot, len(service.locations)),
		News:      articles,
		Timestamp: service.now(),
	}
	for i, location := range service.locations {
		update.Weather[location.Label] = weathers[i]
	}
	if update.News == nil {
		update.News = []entities.NewsArticle{}
	}

	return update, nil
}
