// Package diagserver provides the diagnostics HTTP server for synckit.
package diagserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/synckit-go/internal/infra/buildinfo"
	"github.com/yndnr/synckit-go/internal/telemetry/logger"
)

// SnapshotSource produces a point-in-time snapshot of one structure.
type SnapshotSource func() any

// Handler routes diagnostics requests.
//
// @design DS-0301
type Handler struct {
	snapshots map[string]SnapshotSource
	metrics   http.Handler
	mux       *http.ServeMux
}

func newHandler(snapshots map[string]SnapshotSource, metrics http.Handler) *Handler {
	h := &Handler{
		snapshots: snapshots,
		metrics:   metrics,
		mux:       http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all diagnostics routes.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /healthz", h.handleHealthz)
	h.mux.HandleFunc("GET /snapshot", h.handleSnapshot)
	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics)
	}
}

// handleHealthz handles GET /healthz.
//
// @design DS-0301
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSnapshot handles GET /snapshot.
//
// Each tracked structure reports its own consistent snapshot; the
// endpoint does not freeze all structures at one instant.
func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]any, len(h.snapshots))
	for name, src := range h.snapshots {
		out[name] = src()
	}
	h.writeJSON(w, r, http.StatusOK, out)
}

// writeJSON writes a JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.L(r.Context()).Error("failed to encode response", "error", err)
	}
}
