package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeFresh  = "fresh"
	OutcomeCached = "cached"
	OutcomeEmpty  = "empty"
)

var (
	// Registry holds the dashboard collectors only, not the Go runtime defaults.
	Registry = prometheus.NewRegistry()

	sourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iris",
			Subsystem: "sources",
			Name:      "fetches_total",
			Help:      "Source connector calls by outcome.",
		},
		[]string{"source", "outcome"},
	)

	feedFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iris",
			Subsystem: "feeds",
			Name:      "failures_total",
			Help:      "Syndication feeds skipped during a news fetch.",
		},
		[]string{"category"},
	)

	cycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "iris",
			Subsystem: "aggregator",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one aggregation cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	broadcasts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iris",
			Subsystem: "dispatcher",
			Name:      "messages_total",
			Help:      "Events pushed to subscribers.",
		},
		[]string{"event"},
	)

	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "iris",
			Subsystem: "dispatcher",
			Name:      "subscribers",
			Help:      "Currently registered subscribers.",
		},
	)
)

func init() {
	Registry.MustRegister(sourceFetches, feedFailures, cycleDuration, broadcasts, subscribers)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordSourceFetch(source, outcome string) {
	sourceFetches.WithLabelValues(source, outcome).Inc()
}

func RecordFeedFailure(category string) {
	feedFailures.WithLabelValues(category).Inc()
}

func ObserveCycle(start time.Time) {
	cycleDuration.Observe(time.Since(start).Seconds())
}

func RecordMessage(event string) {
	broadcasts.WithLabelValues(event).Inc()
}

func SetSubscribers(count int) {
	subscribers.Set(float64(count))
}
