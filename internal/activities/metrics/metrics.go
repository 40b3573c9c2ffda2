package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Signup outcome labels.
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidEmail      = "invalid_email"
	OutcomeNotFound          = "not_found"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeFull              = "full"
	OutcomeError             = "error"
)

// Metrics provides observability for the activities module.
// Tracks signup outcomes, signup latency and registry size.
type Metrics struct {
	Signups        *prometheus.CounterVec
	SignupDuration prometheus.Histogram
	Activities     prometheus.Gauge
}

// New registers the activities metrics with reg. Pass nil to use the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Signups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_signups_total",
			Help: "Signup attempts by outcome",
		}, []string{"outcome"}),
		SignupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mergington_signup_duration_seconds",
			Help:    "Duration of Signup operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		Activities: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mergington_activities",
			Help: "Number of activities in the registry",
		}),
	}
}

// IncrementSignup records one signup attempt with its outcome.
func (m *Metrics) IncrementSignup(outcome string) {
	m.Signups.WithLabelValues(outcome).Inc()
}

// ObserveSignup records the duration of a Signup operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSignup(start time.Time) {
	m.SignupDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetActivities(n int) {
	m.Activities.Set(float64(n))
}
