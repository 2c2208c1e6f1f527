package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

type searchTrackRequest struct {
	Query string `json:"query"`
}

// SearchTrack resolves a free-text query to a track, its audio signal, the
// derived feature profile, and the lyrical themes.
func (h *Handler) SearchTrack(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req searchTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	lookup, err := h.svc.LookupTrack(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrTrackNotFound) {
			writeError(w, http.StatusNotFound, "no track matched the query")
			return
		}
		writeError(w, http.StatusBadGateway, "track lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, lookup)
}
