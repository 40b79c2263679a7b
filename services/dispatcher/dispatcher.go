package dispatcher

import (
	"context"
	"fmt"
	"iris-dashboard/models/constants"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/pkg/observer"
	"iris-dashboard/services/aggregator"
	"iris-dashboard/services/news"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(aggregatorService aggregator.Service, techNews news.Service, registry observer.Notifier) *Impl {
	return &Impl{
		aggregator:   aggregatorService,
		techNews:     techNews,
		registry:     registry,
		startupDelay: time.Duration(viper.GetInt(constants.StartupDelay)) * time.Second,
		interval:     time.Duration(viper.GetInt(constants.UpdateInterval)) * time.Second,
		backoff:      time.Duration(viper.GetInt(constants.ErrorBackoff)) * time.Second,
		after:        time.After,
	}
}

func (service *Impl) Run(ctx context.Context) {
	log.Info().Dur("interval", service.interval).Msg("Periodic dashboard updates started")
	c := &cycle{state: StateWaiting, delay: service.startupDelay}
	for service.step(ctx, c) {
	}
	log.Info().Msg("Periodic dashboard updates stopped")
}

// step runs the current state once and moves c to the next one. It returns false when ctx is done.
func (service *Impl) step(ctx context.Context, c *cycle) bool {
	switch c.state {
	case StateWaiting:
		if !service.sleep(ctx, c.delay) {
			return false
		}
		c.delay = service.interval
		subscribers := service.registry.Count()
		if subscribers == 0 {
			return true
		}
		log.Info().Int(constants.LogSubscribers, subscribers).Msg("Fetching data for active subscribers")
		c.state = StateFetching

	case StateFetching:
		err := guard(func() error {
			update, errAggregate := service.aggregator.Aggregate(ctx, false)
			if errAggregate != nil {
				log.Warn().Err(errAggregate).Msg("No dashboard update this cycle")
			}
			c.update = update
			return nil
		})
		if err != nil {
			service.fail(c, err)
			return true
		}
		c.state = StateBroadcasting

	case StateBroadcasting:
		err := guard(func() error {
			if c.update == nil {
				return nil
			}
			if errBroadcast := service.registry.Broadcast(observer.NewEvent(constants.DashboardUpdateEvent, c.update)); errBroadcast != nil {
				return errBroadcast
			}
			metrics.RecordMessage(constants.DashboardUpdateEvent)
			log.Info().Msg("Data broadcast complete")
			return nil
		})
		c.update = nil
		if err != nil {
			service.fail(c, err)
			return true
		}
		c.state = StateWaiting

	case StateErrorBackoff:
		if !service.sleep(ctx, service.backoff) {
			return false
		}
		c.delay = 0
		c.state = StateWaiting
	}
	return true
}

func (service *Impl) fail(c *cycle, err error) {
	log.Error().Err(err).Str(constants.LogState, c.state.String()).Dur("backoff", service.backoff).Msg("Error in periodic update")
	c.update = nil
	c.state = StateErrorBackoff
}

func (service *Impl) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-service.after(d):
		return true
	}
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}

func (service *Impl) Connect(ctx context.Context, o observer.Observer) {
	service.registry.Register(o)
	log.Info().Str(constants.LogSessionID, o.ID()).Msg("Subscriber connected")

	if err := service.sendDashboard(ctx, o.ID(), false); err != nil {
		log.Warn().Err(err).Str(constants.LogSessionID, o.ID()).Msg("Cannot send initial dashboard update")
	}
}

func (service *Impl) Disconnect(id string) {
	service.registry.Unregister(id)
	log.Info().Str(constants.LogSessionID, id).Msg("Subscriber disconnected")
}

func (service *Impl) Refresh(ctx context.Context, id string, force bool) error {
	log.Info().Str(constants.LogSessionID, id).Bool("force", force).Msg("Refresh requested")
	return service.sendDashboard(ctx, id, force)
}

func (service *Impl) TechNews(ctx context.Context, id string) error {
	log.Info().Str(constants.LogSessionID, id).Msg("Tech news requested")
	articles := service.techNews.FetchArticles(ctx)
	if len(articles) == 0 {
		return nil
	}

	if err := service.registry.Notify(id, observer.NewEvent(constants.TechNewsUpdateEvent, articles)); err != nil {
		return err
	}
	metrics.RecordMessage(constants.TechNewsUpdateEvent)
	return nil
}

func (service *Impl) ActiveSubscribers() int {
	return service.registry.Count()
}

func (service *Impl) sendDashboard(ctx context.Context, id string, force bool) error {
	update, err := service.aggregator.Aggregate(ctx, force)
	if err != nil {
		return err
	}

	if err = service.registry.Notify(id, observer.NewEvent(constants.DashboardUpdateEvent, update)); err != nil {
		return err
	}
	metrics.RecordMessage(constants.DashboardUpdateEvent)
	return nil
}
