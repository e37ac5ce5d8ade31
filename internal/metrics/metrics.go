package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hperssn/meditate/internal/domain"
)

const namespace = "meditate"

const (
	OutcomeStarted   = "started"
	OutcomeCompleted = "completed"
	OutcomeStopped   = "stopped"
)

// Metrics holds the Prometheus collectors for the catalog and session runs.
type Metrics struct {
	CatalogFallback prometheus.Gauge
	CatalogSessions prometheus.Gauge
	RunsTotal       *prometheus.CounterVec
	RunsActive      prometheus.Gauge
}

// New creates and registers the collectors on the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CatalogFallback: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_fallback",
			Help:      "1 when the demo session set is in use because the database could not be read.",
		}),
		CatalogSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_sessions",
			Help:      "Number of sessions in the loaded catalog.",
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Session runs by kind and outcome.",
		}, []string{"kind", "outcome"}),
		RunsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_active",
			Help:      "Session runs currently open.",
		}),
	}

	reg.MustRegister(m.CatalogFallback, m.CatalogSessions, m.RunsTotal, m.RunsActive)
	return m
}

func (m *Metrics) CatalogLoaded(sessions int, usingFallback bool) {
	m.CatalogSessions.Set(float64(sessions))
	if usingFallback {
		m.CatalogFallback.Set(1)
	} else {
		m.CatalogFallback.Set(0)
	}
}

func (m *Metrics) RunOutcome(kind domain.Kind, outcome string) {
	m.RunsTotal.WithLabelValues(kind.String(), outcome).Inc()
}

func (m *Metrics) RunOpened() { m.RunsActive.Inc() }

func (m *Metrics) RunClosed() { m.RunsActive.Dec() }
