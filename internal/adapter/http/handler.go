// Package httpadapter is the inbound HTTP surface: a webhook that triggers
// one automation run (for external schedulers) and a health endpoint.
package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adpilot/internal/core/port"
)

// Handler contains dependencies and routes. It holds the Automation usecase
// and a logger for structured logging; routes are registered on a chi.Router.
type Handler struct {
	svc    port.Automation
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.Automation, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/run", h.handleRun)
	})
	r.Get("/healthz", h.handleHealth)
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
