package application

import (
	"context"
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/pkg/observer"
	snapshotsRepo "iris-dashboard/repositories/snapshots"
	telegramRepo "iris-dashboard/repositories/telegram"
	"iris-dashboard/services/aggregator"
	"iris-dashboard/services/coingecko"
	"iris-dashboard/services/dispatcher"
	"iris-dashboard/services/feedparser"
	"iris-dashboard/services/gateway"
	"iris-dashboard/services/health"
	"iris-dashboard/services/news"
	"iris-dashboard/services/openmeteo"
	"iris-dashboard/services/sourcecache"
	"iris-dashboard/services/telegram"
	"iris-dashboard/services/web"
	databases "iris-dashboard/utils/databases"
	"iris-dashboard/utils/dates"
	"net/http"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	scheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(dates.LoadLocation(viper.GetString(constants.Timezone))))
	if errScheduler != nil {
		return nil, errScheduler
	}

	app := Impl{
		scheduler: scheduler,
		client:    &http.Client{Timeout: httpClientTimeout},
	}

	token := viper.GetString(constants.TelegramBotToken)
	persistence := viper.GetBool(constants.SnapshotPersistence)
	if persistence || token != "" {
		app.db = databases.New(viper.GetString(constants.SqliteURL))
		if errDB := app.db.Run(&entities.Snapshot{}, &entities.TelegramUser{}); errDB != nil {
			return nil, errDB
		}
	}

	// Repositories
	var snapshots snapshotsRepo.Repository
	if persistence {
		snapshots = snapshotsRepo.New(app.db)
	}
	cache := sourcecache.New(snapshots)

	// Connectors
	parser := feedparser.New()
	priceService := coingecko.New(app.client, cache)
	weatherService := openmeteo.New(app.client, cache)
	newsService := news.New(app.client, parser, cache)
	techNewsService := news.NewTech(app.client, parser, cache)

	aggregatorService := aggregator.New(priceService, weatherService, newsService, getLocations())
	app.registry = observer.NewRegistry(metrics.SetSubscribers)
	app.dispatcherService = dispatcher.New(aggregatorService, techNewsService, app.registry)
	app.gatewayService = gateway.New(app.dispatcherService)
	app.webService = web.New(app.gatewayService, app.dispatcherService)

	var connected func() bool
	if app.db != nil {
		connected = app.db.IsConnected
	}
	healthService, errHealth := health.New(scheduler, app.registry.Count, connected)
	if errHealth != nil {
		return nil, errHealth
	}
	app.healthService = healthService

	telegramService, errTg := telegram.New(scheduler, token, telegramRepo.New(app.db), aggregatorService, techNewsService)
	switch {
	case errTg == nil:
		app.telegramService = telegramService
	case errors.Is(errTg, telegram.ErrTokenIsMissing):
		log.Info().Msg("Telegram token not set, chats are disabled")
	default:
		log.Warn().Err(errTg).Msg("Telegram bot not started, continuing without it...")
	}

	return &app, nil
}

func getLocations() []constants.Location {
	return []constants.Location{
		{
			Label:     viper.GetString(constants.PrimaryCity),
			Latitude:  viper.GetFloat64(constants.PrimaryLatitude),
			Longitude: viper.GetFloat64(constants.PrimaryLongitude),
		},
		{
			Label:     viper.GetString(constants.SecondaryCity),
			Latitude:  viper.GetFloat64(constants.SecondaryLatitude),
			Longitude: viper.GetFloat64(constants.SecondaryLongitude),
		},
	}
}

func (app *Impl) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	app.workers.Go(func() { app.dispatcherService.Run(ctx) })
	app.workers.Go(func() {
		if err := app.webService.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	})
	if app.telegramService != nil {
		go func() {
			if err := app.telegramService.ListenAndDispatch(); err != nil {
				log.Error().Err(err).Msg("Telegram bot stopped")
			}
		}()
	}
}

func (app *Impl) Shutdown() {
	if app.cancel != nil {
		app.cancel()
	}
	app.webService.Shutdown()
	app.gatewayService.Shutdown()
	app.workers.Wait()

	if app.telegramService != nil {
		app.telegramService.Shutdown()
	}
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}

	app.client.CloseIdleConnections()
	if app.db != nil {
		app.db.Shutdown()
	}
	log.Info().Msgf("Application is no longer running")
}
