package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/haven-living/matchd/internal/match"
	"github.com/haven-living/matchd/internal/store"
)

type MatchesHandler struct {
	store         store.Store
	scorer        *match.Scorer
	candidatePool int
}

func NewMatchesHandler(s store.Store, scorer *match.Scorer, candidatePool int) *MatchesHandler {
	return &MatchesHandler{store: s, scorer: scorer, candidatePool: candidatePool}
}

// RankedListing pairs a ranked result with the listing it came from, so the
// response carries title and features alongside the breakdown.
type RankedListing struct {
	Listing *store.Listing    `json:"listing"`
	Score   float64           `json:"score"`
	Result  match.MatchResult `json:"result"`
}

func (h *MatchesHandler) Rank(w http.ResponseWriter, r *http.Request) {
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

	listings, byID, err := h.candidates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()
	ranked := h.scorer.ScoreMany(&p.Preferences, listings)
	rankingDuration.Observe(time.Since(start).Seconds())
	rankingsServed.Inc()

	limit := queryInt(r, "limit")
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}

	out := make([]RankedListing, 0, limit)
	for _, rm := range ranked[:limit] {
		out = append(out, RankedListing{
			Listing: byID[rm.Candidate.ID],
			Score:   rm.Result.Score,
			Result:  rm.Result,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MatchesHandler) Explain(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid profile id"})
		return
	}
	listingID, err := uuid.Parse(chi.URLParam(r, "listing_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid listing id"})
		return
	}

	p, err := h.store.GetProfile(r.Context(), profileID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}

	l, err := h.store.GetListing(r.Context(), listingID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "listing not found"})
		return
	}

	result := h.scorer.ScoreOne(&p.Preferences, &l.Features)
	scoresComputed.Inc()

	writeJSON(w, http.StatusOK, RankedListing{Listing: l, Score: result.Score, Result: result})
}

func (h *MatchesHandler) Shortlist(w http.ResponseWriter, r *http.Request) {
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

	listings, _, err := h.candidates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	frontier := h.scorer.Shortlist(&p.Preferences, listings)
	if frontier == nil {
		frontier = []match.ShortlistEntry{}
	}
	writeJSON(w, http.StatusOK, frontier)
}

type ScoreAdhocRequest struct {
	Preferences match.PreferenceProfile `json:"preferences"`
	Candidate   match.CandidateFeatures `json:"candidate"`
}

// ScoreAdhoc scores an unstored pair. Used by the onboarding preview flow
// before a profile is persisted.
func (h *MatchesHandler) ScoreAdhoc(w http.ResponseWriter, r *http.Request) {
	var req ScoreAdhocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := h.scorer.ScoreOne(&req.Preferences, &req.Candidate)
	scoresComputed.Inc()

	writeJSON(w, http.StatusOK, result)
}

// candidates loads the scoring pool and an ID index back to full listings.
func (h *MatchesHandler) candidates(ctx context.Context) ([]*match.CandidateFeatures, map[uuid.UUID]*store.Listing, error) {
	pool := h.candidatePool
	if pool <= 0 {
		pool = 500
	}
	listings, err := h.store.ListListings(ctx, store.ListingFilter{Limit: pool})
	if err != nil {
		return nil, nil, err
	}

	features := make([]*match.CandidateFeatures, 0, len(listings))
	byID := make(map[uuid.UUID]*store.Listing, len(listings))
	for _, l := range listings {
		features = append(features, &l.Features)
		byID[l.ID] = l
	}
	return features, byID, nil
}
