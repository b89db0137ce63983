package observability

import (
	"net/http"

	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts public id assignment activity per table.
type Metrics struct {
	attempts   *prometheus.CounterVec
	collisions *prometheus.CounterVec
	assigned   *prometheus.CounterVec
	exhausted  *prometheus.CounterVec
	tries      *prometheus.HistogramVec
}

var _ identifiable.Observer = (*Metrics)(nil)

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identifiable_attempts_total",
		Help: "Total public id candidates generated.",
	}, []string{"table"})
	collisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identifiable_collisions_total",
		Help: "Total public id candidates already taken.",
	}, []string{"table"})
	assigned := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identifiable_assigned_total",
		Help: "Total public ids assigned.",
	}, []string{"table"})
	exhausted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "identifiable_exhausted_total",
		Help: "Total assignments that ran out of attempts.",
	}, []string{"table"})
	tries := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "identifiable_attempts_per_assignment",
		Help:    "Attempts needed to find an unused public id.",
		Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
	}, []string{"table"})

	return &Metrics{
		attempts:   registerCounterVec(registerer, attempts),
		collisions: registerCounterVec(registerer, collisions),
		assigned:   registerCounterVec(registerer, assigned),
		exhausted:  registerCounterVec(registerer, exhausted),
		tries:      registerHistogramVec(registerer, tries),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) Attempt(table string) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(table).Inc()
}

func (m *Metrics) Collision(table string) {
	if m == nil || m.collisions == nil {
		return
	}
	m.collisions.WithLabelValues(table).Inc()
}

func (m *Metrics) Assigned(table string, attempts int) {
	if m == nil || m.assigned == nil {
		return
	}
	m.assigned.WithLabelValues(table).Inc()
	m.tries.WithLabelValues(table).Observe(float64(attempts))
}

func (m *Metrics) Exhausted(table string) {
	if m == nil || m.exhausted == nil {
		return
	}
	m.exhausted.WithLabelValues(table).Inc()
}

func registerCounterVec(registerer prometheus.Registerer, counter *prometheus.CounterVec) *prometheus.CounterVec {
	if err := registerer.Register(counter); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return counter
}

func registerHistogramVec(registerer prometheus.Registerer, histogram *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := registerer.Register(histogram); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return histogram
}
