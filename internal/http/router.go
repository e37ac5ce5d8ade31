package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hperssn/meditate/internal/runner"
)

// NewRouter exposes the catalog and the run commands of m. gatherer may be
// nil, in which case /metrics is not mounted.
func NewRouter(m *runner.Manager, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz)
	r.Get("/sessions", listSessions(m.Catalog()))

	r.Route("/runs", func(r chi.Router) {
		r.Post("/", createRun(m))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getRun(m))
			r.Delete("/", runCommand(m.Close))
			r.Post("/start", runCommand(m.Start))
			r.Post("/pause", runCommand(m.Pause))
			r.Post("/resume", runCommand(m.Resume))
			r.Post("/stop/request", runCommand(m.RequestStop))
			r.Post("/stop", stopRun(m))
			r.Get("/events", StreamRunEvents(m))
		})
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
