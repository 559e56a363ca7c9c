package handlers

import (
	"net/http"
)

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"service": "servicapp-api",
		"status":  "ok",
	}, http.StatusOK)
}

// Health reports liveness plus a cheap schema check.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Stats.TableCount(r.Context())
	if err != nil {
		WriteError(w, "base de datos no disponible", http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, map[string]any{
		"status": "ok",
		"tables": tables,
	}, http.StatusOK)
}

// PlatformStats exposes aggregate counters for the landing page.
func (h *Handlers) PlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.PlatformCounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}
