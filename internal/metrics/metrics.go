// Package metrics exposes Prometheus metrics for the requester.
//
// All recording methods are nil-safe so components can run without metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkbox/internal/domain"
)

const namespace = "linkbox"

// Metrics holds the collectors for session and link activity.
type Metrics struct {
	transitions *prometheus.CounterVec
	active      prometheus.Gauge
	outbound    *prometheus.CounterVec
	inbound     *prometheus.CounterVec
	errors      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Session state transitions by source and target state",
		}, []string{"from", "to"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "1 while a session is connected, 0 otherwise",
		}),
		outbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbound_links_total",
			Help:      "Deep links handed to the opener, by wallet endpoint",
		}, []string{"endpoint"}),
		inbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_links_total",
			Help:      "Inbound deep links by routing outcome",
		}, []string{"outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Failed protocol operations by operation",
		}, []string{"op"}),
	}

	reg.MustRegister(m.transitions, m.active, m.outbound, m.inbound, m.errors)
	return m
}

// Transition records a state change.
func (m *Metrics) Transition(from, to domain.SessionState) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
	if to == domain.StateConnected {
		m.active.Set(1)
	} else {
		m.active.Set(0)
	}
}

// Outbound records a link sent to the wallet endpoint ep.
func (m *Metrics) Outbound(ep domain.Endpoint) {
	if m == nil {
		return
	}
	m.outbound.WithLabelValues(ep.String()).Inc()
}

// Inbound records the routing outcome of an inbound link.
func (m *Metrics) Inbound(outcome string) {
	if m == nil {
		return
	}
	m.inbound.WithLabelValues(outcome).Inc()
}

// ProtocolError records a failed operation.
func (m *Metrics) ProtocolError(op string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op).Inc()
}

// Handler serves the metrics gathered by reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
