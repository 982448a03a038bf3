// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ChatRequestsTotal counts answered messages by response kind.
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total chat messages answered, by response kind",
		},
		[]string{"kind"},
	)

	// ChatMatchScore tracks the score of accepted intent matches.
	ChatMatchScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_match_score",
			Help:    "Relevance score of matched intents",
			Buckets: []float64{.1, .2, .3, .4, .5, .6, .7, .8, .9, 1},
		},
		[]string{"strategy"},
	)

	// SpellingCorrectionsTotal counts messages changed by spelling correction.
	SpellingCorrectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spelling_corrections_total",
			Help: "Total messages altered by spelling correction",
		},
	)

	// SessionsActive tracks sessions currently held in memory.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of chat sessions held in memory",
		},
	)

	// EventsPublishedTotal counts exchange events sent to NATS.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_events_published_total",
			Help: "Exchange events published to NATS",
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordChat records the outcome of one answered message.
func RecordChat(kind, strategy string, score float64, corrected bool) {
	ChatRequestsTotal.WithLabelValues(kind).Inc()
	if strategy != "" {
		ChatMatchScore.WithLabelValues(strategy).Observe(score)
	}
	if corrected {
		SpellingCorrectionsTotal.Inc()
	}
}

// RecordPublish records the result of publishing an exchange event.
func RecordPublish(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EventsPublishedTotal.WithLabelValues(status).Inc()
}
