package api

import (
	"net/http"

	"github.com/haven-living/matchd/internal/store"
)

type StatsHandler struct {
	store store.Store
}

func NewStatsHandler(s store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
