package match

import (
	"log/slog"
	"sort"
	"sync"
)

// Scorer orchestrates the six-factor weighted compatibility engine. It is
// stateless and safe for concurrent use.
type Scorer struct {
	weights WeightSet
	params  Params
	logger  *slog.Logger
}

// NewScorer creates a Scorer with the given weight table and thresholds.
func NewScorer(weights WeightSet, params Params, logger *slog.Logger) *Scorer {
	return &Scorer{weights: weights, params: params, logger: logger}
}

// ScoreOne computes the full result for one profile-candidate pair. It is
// deterministic for identical inputs, never mutates them, and never fails on
// well-typed input: a reversed budget range is swapped, absent preferences
// contribute no weight.
func (s *Scorer) ScoreOne(p *PreferenceProfile, c *CandidateFeatures) MatchResult {
	amenities, dealbreakers := AmenityFactor(p, c)
	factors := []FactorResult{
		PriceFactor(p, c, s.params),
		LocationFactor(p, c, s.params),
		CapacityFactor(p, c),
		TimingFactor(p, c, s.params),
		amenities,
		LifestyleFactor(p, c),
	}

	// Redistribute weight across applicable factors so they sum to 100.
	// Price and location are always applicable (baseline floor).
	base := s.weights.asList()
	var applicableSum float64
	for i := range factors {
		if factors[i].Applicable {
			applicableSum += base[i]
		}
	}
	if applicableSum > 0 {
		scale := 100 / applicableSum
		for i := range factors {
			if !factors[i].Applicable {
				continue
			}
			factors[i].Weight = base[i] * scale
			factors[i].Contribution = factors[i].Score * factors[i].Weight
		}
	}

	var total float64
	for i := range factors {
		total += factors[i].Contribution
	}

	// A dealbreaker zeroes the whole score; the breakdown keeps every
	// factor's pre-zeroing contribution for the "why this match" view.
	if len(dealbreakers) > 0 {
		total = 0
	}
	sort.Strings(dealbreakers)

	return MatchResult{
		Score:        clamp(total, 0, 100),
		Breakdown:    factors,
		Dealbreakers: dealbreakers,
	}
}

// ScoreMany scores every candidate and returns them ranked: score descending,
// ties broken by candidate ID ascending. Per-candidate scoring fans out over
// a bounded worker pool; the result is identical for any input order of the
// same candidate set.
func (s *Scorer) ScoreMany(p *PreferenceProfile, candidates []*CandidateFeatures) []RankedMatch {
	out := make([]RankedMatch, len(candidates))

	workers := s.params.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	if workers <= 1 {
		for i, c := range candidates {
			out[i] = RankedMatch{Candidate: c, Result: s.ScoreOne(p, c)}
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					c := candidates[i]
					out[i] = RankedMatch{Candidate: c, Result: s.ScoreOne(p, c)}
				}
			}()
		}
		for i := range candidates {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Result.Score != out[j].Result.Score {
			return out[i].Result.Score > out[j].Result.Score
		}
		return out[i].Candidate.ID.String() < out[j].Candidate.ID.String()
	})
	return out
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
