package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeResolved    = "resolved"
	outcomeAuthFailed  = "auth_failed"
	outcomeFetchFailed = "fetch_failed"
)

// Metrics counts resolver activity. A nil *Metrics records nothing.
type Metrics struct {
	lookups *prometheus.CounterVec
	flows   *prometheus.CounterVec
	logouts *prometheus.CounterVec
}

// NewMetrics creates the resolver collectors and registers them with reg.
// It panics if they are already registered there. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authclient",
				Subsystem: "resolver",
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by result",
			},
			[]string{"result"},
		),
		flows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authclient",
				Subsystem: "resolver",
				Name:      "flows_total",
				Help:      "Login/fetch/logout flows by outcome",
			},
			[]string{"outcome"},
		),
		logouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authclient",
				Subsystem: "resolver",
				Name:      "logouts_total",
				Help:      "Logout attempts by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) lookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.lookups.WithLabelValues("hit").Inc()
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) flow(outcome string) {
	if m == nil {
		return
	}
	m.flows.WithLabelValues(outcome).Inc()
}

func (m *Metrics) logout(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.logouts.WithLabelValues("ok").Inc()
		return
	}
	m.logouts.WithLabelValues("failed").Inc()
}
