package digest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/haven-living/matchd/internal/config"
	"github.com/haven-living/matchd/internal/events"
	"github.com/haven-living/matchd/internal/match"
	"github.com/haven-living/matchd/internal/store"
)

// Worker periodically re-ranks the listing pool for every profile and
// publishes a MatchSuggestedEvent for new high-scoring matches. Each
// profile-listing pair is suggested at most once per process lifetime.
type Worker struct {
	store  store.Store
	events events.Client
	scorer *match.Scorer
	cfg    *config.Config
	logger *slog.Logger

	seenMu sync.Mutex
	seen   map[string]bool

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, ev events.Client, scorer *match.Scorer, cfg *config.Config, logger *slog.Logger) *Worker {
	return &Worker{
		store:  s,
		events: ev,
		scorer: scorer,
		cfg:    cfg,
		logger: logger,
		seen:   make(map[string]bool),
		stopCh: make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.loop(ctx)
}

func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.DigestInterval())
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	profiles, err := w.store.ListProfiles(ctx, store.ProfileFilter{})
	if err != nil {
		w.logger.Error("digest: failed to list profiles", "error", err)
		return
	}
	listings, err := w.store.ListListings(ctx, store.ListingFilter{Limit: w.cfg.Matching.CandidatePool})
	if err != nil {
		w.logger.Error("digest: failed to list listings", "error", err)
		return
	}
	if len(profiles) == 0 || len(listings) == 0 {
		return
	}

	for _, p := range profiles {
		w.digestProfile(p, listings)
	}
}

func (w *Worker) digestProfile(p *store.Profile, listings []*store.Listing) {
	// Cheap pre-gate before full scoring; the pool can be large.
	var pool []*match.CandidateFeatures
	for _, l := range listings {
		if w.scorer.QuickFit(&p.Preferences, &l.Features) {
			pool = append(pool, &l.Features)
		}
	}
	if len(pool) == 0 {
		return
	}

	ranked := w.scorer.ScoreMany(&p.Preferences, pool)

	suggested := 0
	for _, rm := range ranked {
		if suggested >= w.cfg.Digest.MaxSuggestions {
			break
		}
		if rm.Result.Score < w.cfg.Digest.MinScore {
			break
		}

		key := p.ID.String() + ":" + rm.Candidate.ID.String()
		w.seenMu.Lock()
		already := w.seen[key]
		if !already {
			w.seen[key] = true
		}
		w.seenMu.Unlock()
		if already {
			continue
		}

		evt := events.MatchSuggestedEvent{
			ProfileID: p.ID.String(),
			ListingID: rm.Candidate.ID.String(),
			Score:     rm.Result.Score,
			Rank:      suggested + 1,
			Timestamp: time.Now().UTC(),
		}
		if w.events != nil {
			if err := w.events.Publish(events.SubjectMatchSuggested(evt.ProfileID), evt); err != nil {
				w.logger.Error("digest: failed to publish suggestion",
					"profile_id", evt.ProfileID, "listing_id", evt.ListingID, "error", err)
				continue
			}
		}
		w.logger.Info("match suggested",
			"profile_id", evt.ProfileID,
			"listing_id", evt.ListingID,
			"score", evt.Score,
			"rank", evt.Rank,
		)
		suggested++
	}
}
