package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/hperssn/meditate/internal/domain"
	"github.com/hperssn/meditate/internal/runner"
)

type catalogResponse struct {
	UsingFallback bool                   `json:"usingFallback"`
	Status        string                 `json:"status"`
	Sessions      []domain.SessionRecord `json:"sessions"`
}

func listSessions(c *domain.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, catalogResponse{
			UsingFallback: c.UsingFallback(),
			Status:        c.Status(),
			Sessions:      c.Sessions(),
		}, http.StatusOK)
	}
}

func createRun(m *runner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index *int `json:"index"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if req.Index == nil {
			respondError(w, "index is required", http.StatusBadRequest)
			return
		}

		run, err := m.Create(*req.Index)
		if err != nil {
			respondError(w, err.Error(), statusFor(err))
			return
		}

		respondJSON(w, run.Snapshot(), http.StatusCreated)
	}
}

func getRun(m *runner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := m.Snapshot(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err.Error(), statusFor(err))
			return
		}

		respondJSON(w, snap, http.StatusOK)
	}
}

// runCommand adapts a manager command to a handler answering 204 on success.
func runCommand(fn func(id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(chi.URLParam(r, "id")); err != nil {
			respondError(w, err.Error(), statusFor(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func stopRun(m *runner.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Confirmed bool `json:"confirmed"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := m.Stop(chi.URLParam(r, "id"), req.Confirmed); err != nil {
			respondError(w, err.Error(), statusFor(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
