// Package rest provides the HTTP delivery layer for the trail pipeline.
package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pathos-labs/pathos/backend/internal/core/services"
)

// Handler manages the HTTP interface for the application.
type Handler struct {
	svc    *services.Orchestrator
	router *mux.Router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator) *Handler {
	h := &Handler{
		svc:    svc,
		router: mux.NewRouter(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	h.router.HandleFunc("/v1/tracks/search", h.SearchTrack).Methods(http.MethodPost)
	h.router.HandleFunc("/v1/trails/generate", h.GenerateTrail).Methods(http.MethodPost)
	h.router.HandleFunc("/v1/trails/share", h.ShareTrail).Methods(http.MethodPost)
	h.router.HandleFunc("/v1/trails", h.ListTrails).Methods(http.MethodGet)
	h.router.HandleFunc("/v1/trails/stream", h.StreamTrails).Methods(http.MethodGet)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
