package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/haven-living/matchd/internal/events"
	"github.com/haven-living/matchd/internal/match"
	"github.com/haven-living/matchd/internal/store"
)

type ListingsHandler struct {
	store  store.Store
	events events.Client
}

func NewListingsHandler(s store.Store, ev events.Client) *ListingsHandler {
	return &ListingsHandler{store: s, events: ev}
}

type CreateListingRequest struct {
	Title    string                  `json:"title"`
	Features match.CandidateFeatures `json:"features"`
}

func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" || req.Features.City == "" || req.Features.Price <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title, city and price required"})
		return
	}

	l := &store.Listing{
		Title:    req.Title,
		Features: req.Features,
	}
	if err := h.store.CreateListing(r.Context(), l); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectListingCreated(l.ID.String()), events.ListingEvent{
			ListingID: l.ID.String(),
			City:      l.Features.City,
			Price:     l.Features.Price,
		})
	}

	writeJSON(w, http.StatusCreated, l)
}

func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ListingFilter{
		City:     r.URL.Query().Get("city"),
		MaxPrice: queryInt(r, "max_price"),
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
	}
	listings, err := h.store.ListListings(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if listings == nil {
		listings = []*store.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid listing id"})
		return
	}

	l, err := h.store.GetListing(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "listing not found"})
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid listing id"})
		return
	}

	l, err := h.store.GetListing(r.Context(), id)
	if err != nil || l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "listing not found"})
		return
	}

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title != "" {
		l.Title = req.Title
	}
	l.Features = req.Features

	if err := h.store.UpdateListing(r.Context(), l); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectListingUpdated(l.ID.String()), events.ListingEvent{
			ListingID: l.ID.String(),
			City:      l.Features.City,
			Price:     l.Features.Price,
		})
	}

	writeJSON(w, http.StatusOK, l)
}

func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid listing id"})
		return
	}

	if err := h.store.DeleteListing(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectListingDeleted(id.String()), events.ListingEvent{
			ListingID: id.String(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
