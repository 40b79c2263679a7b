package health

import (
	"iris-dashboard/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// New schedules the heartbeat. connected may be nil when nothing is persisted.
func New(scheduler gocron.Scheduler, subscribers func() int, connected func() bool) (*Impl, error) {
	service := Impl{subscribers: subscribers, connected: connected}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), false),
		gocron.NewTask(func() { service.Beat() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) Beat() {
	event := log.Info().Int(constants.LogSubscribers, service.subscribers())
	if service.connected != nil {
		event = event.Bool("database", service.connected())
	}
	event.Msg("Application is running")
}
