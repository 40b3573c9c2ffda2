package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics shared by every route.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	PanicsRecovered prometheus.Counter
}

// New creates and registers the platform metrics with reg. Pass nil to use
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mergington_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method", "status"}),
		PanicsRecovered: factory.NewCounter(prometheus.CounterOpts{
			Name: "mergington_http_panics_recovered_total",
			Help: "Handler panics converted into 500 responses",
		}),
	}
}

// ObserveRequest records one request's latency.
// Call with time.Now() taken before the handler ran.
func (m *Metrics) ObserveRequest(route, method, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(route, method, status).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementPanicsRecovered() {
	m.PanicsRecovered.Inc()
}
