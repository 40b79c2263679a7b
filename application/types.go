package application

import (
	"context"
	"iris-dashboard/pkg/observer"
	"iris-dashboard/services/dispatcher"
	"iris-dashboard/services/gateway"
	"iris-dashboard/services/health"
	"iris-dashboard/services/telegram"
	"iris-dashboard/services/web"
	databases "iris-dashboard/utils/databases"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sourcegraph/conc"
)

const httpClientTimeout = 30 * time.Second

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler         gocron.Scheduler
	client            *http.Client
	db                databases.SqlConnection
	registry          *observer.Registry
	dispatcherService dispatcher.Service
	gatewayService    *gateway.Impl
	webService        web.Service
	healthService     health.Service
	telegramService   telegram.Service
	workers           conc.WaitGroup
	cancel            context.CancelFunc
}
