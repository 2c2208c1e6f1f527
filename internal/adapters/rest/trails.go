package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

type generateTrailRequest struct {
	Signal        *domain.TrackSignal `json:"signal,omitempty"`
	Lyrics        domain.LyricsThemes `json:"lyrics"`
	StartLocation domain.Coordinate   `json:"startLocation"`
}

// GenerateTrail synthesizes a trail plan for the request's start location
// from an optional track signal and lyrical themes.
func (h *Handler) GenerateTrail(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req generateTrailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	plan, err := h.svc.GenerateTrail(r.Context(), req.Signal, req.Lyrics, req.StartLocation)
	if err != nil {
		writeTrailError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

type shareTrailRequest struct {
	Trail         domain.TrailPlan     `json:"trail"`
	StartLocation domain.Coordinate    `json:"startLocation"`
	Song          domain.SignalSummary `json:"song"`
}

// ShareTrail persists a generated plan to the public gallery.
func (h *Handler) ShareTrail(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req shareTrailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := h.svc.ShareTrail(r.Context(), req.Trail, req.StartLocation, req.Song)
	if err != nil {
		writeTrailError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// ListTrails returns the newest shared trails.
func (h *Handler) ListTrails(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListTrails(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load shared trails")
		return
	}
	if plans == nil {
		plans = []domain.TrailPlan{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"trails": plans})
}

// StreamTrails pushes the shared trail list over server-sent events. The
// initial list is sent immediately; subsequent store changes follow as they
// settle.
func (h *Handler) StreamTrails(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// The callback runs on the subscription goroutine; events channel the
	// payloads back so this handler owns all writes to w.
	events := make(chan []byte, 4)
	cancel := h.svc.Subscribe(func(plans []domain.TrailPlan) {
		payload, err := json.Marshal(map[string]any{"trails": plans})
		if err != nil {
			log.Printf("WARN rest: encode trail stream event: %v", err)
			return
		}
		select {
		case events <- payload:
		default:
			log.Printf("WARN rest: trail stream client too slow, event dropped")
		}
	})
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-events:
			fmt.Fprintf(w, "event: trails\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

type trailErrorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// writeTrailError maps pipeline failures onto the HTTP surface. Input defects
// are the caller's fault; everything else is reported as a generation failure
// with its diagnostic detail.
func writeTrailError(w http.ResponseWriter, err error) {
	var invalid *domain.InvalidInputError
	var validation *domain.ValidationError
	var generation *domain.TrailGenerationError

	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &generation):
		if errors.As(generation.Detail, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		detail := ""
		if generation.Detail != nil {
			detail = generation.Detail.Error()
		}
		writeJSON(w, http.StatusInternalServerError, trailErrorResponse{
			Error:     generation.Message,
			Details:   detail,
			Timestamp: generation.Timestamp,
		})
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, invalid.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
