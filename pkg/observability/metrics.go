package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/substrate/pkg/domain"
	"github.com/aretw0/substrate/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the designer's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Clicks   *prometheus.CounterVec
	Armed    *prometheus.CounterVec
	Sessions prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry.
// Go runtime and process collectors are included.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Clicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "substrate_clicks_total",
				Help: "Accepted grid clicks by outcome",
			},
			[]string{"outcome"},
		),
		Armed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "substrate_placements_armed_total",
				Help: "Times node placement was armed, by role",
			},
			[]string{"role"},
		),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "substrate_sessions_active",
			Help: "Number of live editing sessions",
		}),
	}
	m.registry.MustRegister(
		m.Clicks,
		m.Armed,
		m.Sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records clicks and armings.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClick: func(_ context.Context, e *domain.ClickEvent) {
			m.Clicks.WithLabelValues(string(e.Outcome.Kind)).Inc()
		},
		OnModeChange: func(_ context.Context, e *domain.ModeEvent) {
			if role, ok := e.To.ArmedRole(); ok {
				m.Armed.WithLabelValues(role.String()).Inc()
			}
		},
	}
}

// SessionHooks keeps the active sessions gauge in step with the manager.
func (m *Metrics) SessionHooks() session.Hooks {
	return session.Hooks{
		OnStart:  func(context.Context, string) { m.Sessions.Inc() },
		OnDelete: func(context.Context, string) { m.Sessions.Dec() },
	}
}
