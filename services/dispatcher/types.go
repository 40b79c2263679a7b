package dispatcher

import (
	"context"
	"errors"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/observer"
	"iris-dashboard/services/aggregator"
	"iris-dashboard/services/news"
	"time"
)

type State int

const (
	StateWaiting State = iota
	StateFetching
	StateBroadcasting
	StateErrorBackoff
)

var ErrPanic = errors.New("recovered from panic")

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateFetching:
		return "fetching"
	case StateBroadcasting:
		return "broadcasting"
	case StateErrorBackoff:
		return "error-backoff"
	default:
		return "unknown"
	}
}

type Service interface {
	// Run drives the periodic broadcast until ctx is done.
	Run(ctx context.Context)
	// Connect registers o and sends it one dashboard update.
	Connect(ctx context.Context, o observer.Observer)
	Disconnect(id string)
	// Refresh sends a new dashboard update to the subscriber id only.
	Refresh(ctx context.Context, id string, force bool) error
	// TechNews sends the tech news list to the subscriber id only.
	TechNews(ctx context.Context, id string) error
	ActiveSubscribers() int
}

type Impl struct {
	aggregator   aggregator.Service
	techNews     news.Service
	registry     observer.Notifier
	startupDelay time.Duration
	interval     time.Duration
	backoff      time.Duration
	after        func(time.Duration) <-chan time.Time
}

// cycle is the periodic loop state carried between two steps.
type cycle struct {
	state  State
	delay  time.Duration
	update *entities.DashboardUpdate
}
