// Package metrics exports circuit breaker state to Prometheus. The
// collector plugs into the breaker's state-change hook; the breaker core
// itself stays free of any metrics dependency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Keksclan/goSafeSquirrel/breaker"
)

// Collector holds the breaker metrics: a per-resource state gauge (0 =
// closed, 1 = open, 2 = half-open) and a transition counter.
type Collector struct {
	state       *prometheus.GaugeVec
	transitions *prometheus.CounterVec
}

// NewCollector creates the breaker metrics and registers them with reg.
// It panics when the metrics are already registered, matching the usual
// Prometheus registration behaviour.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gss_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=open, 2=half_open).",
		}, []string{"resource"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gss_breaker_transitions_total",
			Help: "Circuit breaker state transitions.",
		}, []string{"resource", "from", "to"}),
	}
	reg.MustRegister(c.state, c.transitions)
	return c
}

// Observer returns a state-change hook for a breaker guarding resource,
// suitable for breaker.WithOnStateChange.
func (c *Collector) Observer(resource string) breaker.StateChangeFunc {
	return func(_ *breaker.Breaker, from, to breaker.State) {
		c.state.WithLabelValues(resource).Set(float64(to))
		c.transitions.WithLabelValues(resource, from.String(), to.String()).Inc()
	}
}
