package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haven-living/matchd/internal/events"
	"github.com/haven-living/matchd/internal/match"
	"github.com/haven-living/matchd/internal/store"
)

func NewRouter(s store.Store, ev events.Client, scorer *match.Scorer, candidatePool int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	profiles := NewProfilesHandler(s, ev)
	listings := NewListingsHandler(s, ev)
	matches := NewMatchesHandler(s, scorer, candidatePool)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/profiles", profiles.Create)
		r.Get("/profiles", profiles.List)
		r.Get("/profiles/{id}", profiles.Get)
		r.Put("/profiles/{id}", profiles.Update)
		r.Delete("/profiles/{id}", profiles.Delete)

		r.Get("/profiles/{id}/matches", matches.Rank)
		r.Get("/profiles/{id}/matches/{listing_id}", matches.Explain)
		r.Get("/profiles/{id}/shortlist", matches.Shortlist)
		r.Post("/matches/score", matches.ScoreAdhoc)

		r.Post("/listings", listings.Create)
		r.Get("/listings", listings.List)
		r.Get("/listings/{id}", listings.Get)
		r.Put("/listings/{id}", listings.Update)
		r.Delete("/listings/{id}", listings.Delete)

		r.Get("/stats", NewStatsHandler(s).Stats)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
