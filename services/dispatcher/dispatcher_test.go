package dispatcher

import (
	"context"
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/observer"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAggregator struct {
	mu     sync.Mutex
	calls  int
	forced []bool
	err    error
	panics bool
}

func (f *fakeAggregator) Aggregate(_ context.Context, force bool) (*entities.DashboardUpdate, error) {
	f.mu.Lock()
	f.calls++
	f.forced = append(f.forced, force)
	f.mu.Unlock()

	if f.panics {
		panic("connector exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &entities.DashboardUpdate{News: []entities.NewsArticle{}, Timestamp: time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)}, nil
}

type fakeNews struct {
	articles []entities.NewsArticle
}

func (f *fakeNews) FetchArticles(_ context.Context) []entities.NewsArticle {
	return f.articles
}

type fakeObserver struct {
	id       string
	err      error
	mu       sync.Mutex
	received []observer.Event
}

func (f *fakeObserver) ID() string { return f.id }

func (f *fakeObserver) OnNotify(e observer.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.received = append(f.received, e)
	return nil
}

func (f *fakeObserver) events() []observer.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]observer.Event(nil), f.received...)
}

type fakeClock struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (f *fakeClock) after(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func newTestDispatcher(agg *fakeAggregator, tech *fakeNews, clock *fakeClock) (*Impl, *observer.Registry) {
	registry := observer.NewRegistry(nil)
	return &Impl{
		aggregator:   agg,
		techNews:     tech,
		registry:     registry,
		startupDelay: 5 * time.Second,
		interval:     300 * time.Second,
		backoff:      60 * time.Second,
		after:        clock.after,
	}, registry
}

func TestStep_EmptyRegistrySkipsFetching(t *testing.T) {
	agg := &fakeAggregator{}
	clock := &fakeClock{}
	service, _ := newTestDispatcher(agg, &fakeNews{}, clock)

	c := &cycle{state: StateWaiting, delay: service.startupDelay}
	for i := 0; i < 3; i++ {
		require.True(t, service.step(context.Background(), c))
		assert.Equal(t, StateWaiting, c.state)
	}

	assert.Zero(t, agg.calls)
	assert.Equal(t, []time.Duration{5 * time.Second, 300 * time.Second, 300 * time.Second}, clock.waits)
}

func TestStep_FullCycleBroadcasts(t *testing.T) {
	agg := &fakeAggregator{}
	service, registry := newTestDispatcher(agg, &fakeNews{}, &fakeClock{})
	first := &fakeObserver{id: "a"}
	second := &fakeObserver{id: "b"}
	registry.Register(first)
	registry.Register(second)

	c := &cycle{state: StateWaiting}
	ctx := context.Background()

	require.True(t, service.step(ctx, c))
	assert.Equal(t, StateFetching, c.state)
	require.True(t, service.step(ctx, c))
	assert.Equal(t, StateBroadcasting, c.state)
	require.NotNil(t, c.update)
	require.True(t, service.step(ctx, c))
	assert.Equal(t, StateWaiting, c.state)
	assert.Nil(t, c.update)

	assert.Equal(t, 1, agg.calls)
	assert.Equal(t, []bool{false}, agg.forced)
	for _, o := range []*fakeObserver{first, second} {
		events := o.events()
		require.Len(t, events, 1)
		assert.Equal(t, constants.DashboardUpdateEvent, events[0].Name)
	}
}

func TestStep_AggregateErrorSkipsBroadcast(t *testing.T) {
	agg := &fakeAggregator{err: errors.New("aborted")}
	service, registry := newTestDispatcher(agg, &fakeNews{}, &fakeClock{})
	subscriber := &fakeObserver{id: "a"}
	registry.Register(subscriber)

	c := &cycle{state: StateFetching}
	require.True(t, service.step(context.Background(), c))
	assert.Equal(t, StateBroadcasting, c.state)
	require.True(t, service.step(context.Background(), c))
	assert.Equal(t, StateWaiting, c.state)

	assert.Empty(t, subscriber.events())
}

func TestStep_PanicGoesToBackoffThenWakesImmediately(t *testing.T) {
	agg := &fakeAggregator{panics: true}
	clock := &fakeClock{}
	service, registry := newTestDispatcher(agg, &fakeNews{}, clock)
	registry.Register(&fakeObserver{id: "a"})

	c := &cycle{state: StateFetching}
	require.True(t, service.step(context.Background(), c))
	assert.Equal(t, StateErrorBackoff, c.state)

	require.True(t, service.step(context.Background(), c))
	assert.Equal(t, StateWaiting, c.state)
	assert.Zero(t, c.delay)
	assert.Equal(t, []time.Duration{60 * time.Second}, clock.waits)

	require.True(t, service.step(context.Background(), c))
	assert.Equal(t, StateFetching, c.state)
	assert.Equal(t, []time.Duration{60 * time.Second}, clock.waits)
}

func TestStep_FailedBroadcastGoesToBackoff(t *testing.T) {
	service, registry := newTestDispatcher(&fakeAggregator{}, &fakeNews{}, &fakeClock{})
	registry.Register(&fakeObserver{id: "a", err: errors.New("closed")})

	c := &cycle{state: StateFetching}
	require.True(t, service.step(context.Background(), c))
	require.True(t, service.step(context.Background(), c))

	assert.Equal(t, StateErrorBackoff, c.state)
	assert.Nil(t, c.update)
}

func TestRun_StopsWhenContextDone(t *testing.T) {
	service, _ := newTestDispatcher(&fakeAggregator{}, &fakeNews{}, &fakeClock{})
	service.after = func(time.Duration) <-chan time.Time { return make(chan time.Time) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestConnect_SendsInitialUpdate(t *testing.T) {
	agg := &fakeAggregator{}
	service, _ := newTestDispatcher(agg, &fakeNews{}, &fakeClock{})
	subscriber := &fakeObserver{id: "a"}

	service.Connect(context.Background(), subscriber)

	assert.Equal(t, 1, service.ActiveSubscribers())
	events := subscriber.events()
	require.Len(t, events, 1)
	assert.Equal(t, constants.DashboardUpdateEvent, events[0].Name)

	service.Disconnect("a")
	assert.Zero(t, service.ActiveSubscribers())
}

func TestRefresh_OnlyRequesterReceives(t *testing.T) {
	agg := &fakeAggregator{}
	service, registry := newTestDispatcher(agg, &fakeNews{}, &fakeClock{})
	requester := &fakeObserver{id: "a"}
	bystander := &fakeObserver{id: "b"}
	registry.Register(requester)
	registry.Register(bystander)

	require.NoError(t, service.Refresh(context.Background(), "a", true))

	assert.Len(t, requester.events(), 1)
	assert.Empty(t, bystander.events())
	assert.Equal(t, []bool{true}, agg.forced)

	assert.ErrorIs(t, service.Refresh(context.Background(), "ghost", false), observer.ErrUnknownObserver)
}

func TestTechNews(t *testing.T) {
	tech := &fakeNews{articles: []entities.NewsArticle{{Title: "Go 1.23", URL: "https://go.dev"}}}
	service, registry := newTestDispatcher(&fakeAggregator{}, tech, &fakeClock{})
	requester := &fakeObserver{id: "a"}
	registry.Register(requester)

	require.NoError(t, service.TechNews(context.Background(), "a"))
	events := requester.events()
	require.Len(t, events, 1)
	assert.Equal(t, constants.TechNewsUpdateEvent, events[0].Name)
	assert.Equal(t, tech.articles, events[0].Payload)

	tech.articles = []entities.NewsArticle{}
	require.NoError(t, service.TechNews(context.Background(), "a"))
	assert.Len(t, requester.events(), 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "waiting", StateWaiting.String())
	assert.Equal(t, "error-backoff", StateErrorBackoff.String())
	assert.Equal(t, "unknown", State(42).String())
}
