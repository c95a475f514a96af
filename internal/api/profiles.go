package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/haven-living/matchd/internal/events"
	"github.com/haven-living/matchd/internal/match"
	"github.com/haven-living/matchd/internal/store"
)

type ProfilesHandler struct {
	store  store.Store
	events events.Client
}

func NewProfilesHandler(s store.Store, ev events.Client) *ProfilesHandler {
	return &ProfilesHandler{store: s, events: ev}
}

type CreateProfileRequest struct {
	DisplayName string                  `json:"display_name"`
	Preferences match.PreferenceProfile `json:"preferences"`
}

func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DisplayName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "display_name required"})
		return
	}

	p := &store.Profile{
		DisplayName: req.DisplayName,
		Preferences: req.Preferences,
	}
	if err := h.store.CreateProfile(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectProfileCreated(p.ID.String()), events.ProfileEvent{
			ProfileID: p.ID.String(),
		})
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ProfileFilter{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	profiles, err := h.store.ListProfiles(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if profiles == nil {
		profiles = []*store.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile id"})
		return
	}

	p, err := h.store.GetProfile(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile id"})
		return
	}

	p, err := h.store.GetProfile(r.Context(), id)
	if err != nil || p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DisplayName != "" {
		p.DisplayName = req.DisplayName
	}
	p.Preferences = req.Preferences

	if err := h.store.UpdateProfile(r.Context(), p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectProfileUpdated(p.ID.String()), events.ProfileEvent{
			ProfileID: p.ID.String(),
		})
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile id"})
		return
	}

	if err := h.store.DeleteProfile(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectProfileDeleted(id.String()), events.ProfileEvent{
			ProfileID: id.String(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
