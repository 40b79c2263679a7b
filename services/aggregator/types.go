package aggregator

import (
	"context"
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/services/coingecko"
	"iris-dashboard/services/news"
	"iris-dashboard/services/openmeteo"
	"time"
)

var ErrCycleAborted = errors.New("aggregation cycle aborted")

type Service interface {
	// Aggregate runs every connector concurrently and joins their results. An error means no
	// update was produced for this cycle.
	Aggregate(ctx context.Context, force bool) (*entities.DashboardUpdate, error)
}

type Impl struct {
	price     coingecko.Service
	weather   openmeteo.Service
	news      news.Service
	locations []constants.Location
	now       func() time.Time
}
