package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts questionnaire sessions and step transitions on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	sessions    *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripzy",
			Subsystem: "questionnaire",
			Name:      "sessions_started_total",
			Help:      "Questionnaire sessions started.",
		}, []string{"flow"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripzy",
			Subsystem: "questionnaire",
			Name:      "transitions_total",
			Help:      "Questionnaire step transitions by kind (moved, completed, aborted).",
		}, []string{"flow", "kind"}),
	}
	m.registry.MustRegister(
		m.sessions,
		m.transitions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) SessionStarted(flow string) {
	m.sessions.WithLabelValues(flow).Inc()
}

func (m *Metrics) TransitionRecorded(flow string, kind string) {
	m.transitions.WithLabelValues(flow, kind).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
