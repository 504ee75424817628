package todos

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeFulfilled = "fulfilled"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// Metrics records fetch lifecycle counters. A nil *Metrics is a no-op.
type Metrics struct {
	started   prometheus.Counter
	completed *prometheus.CounterVec
	duration  prometheus.Histogram
	inflight  prometheus.Gauge
}

// NewMetrics registers the fetch metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		started: f.NewCounter(prometheus.CounterOpts{
			Name: "hxdemo_todo_fetch_started_total",
			Help: "Todo fetches issued.",
		}),
		completed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hxdemo_todo_fetch_completed_total",
			Help: "Todo fetches settled, by outcome.",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hxdemo_todo_fetch_duration_seconds",
			Help:    "Time from issuing a todo fetch to applying its outcome.",
			Buckets: prometheus.DefBuckets,
		}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "hxdemo_todo_fetch_inflight",
			Help: "Todo fetches currently outstanding.",
		}),
	}
}

func (m *Metrics) fetchStarted() {
	if m == nil {
		return
	}
	m.started.Inc()
	m.inflight.Inc()
}

func (m *Metrics) fetchSettled(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	m.duration.Observe(elapsed.Seconds())
	m.completed.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeFulfilled
	case errors.Is(err, ErrRemoteRejected):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
