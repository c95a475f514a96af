package match

import (
	"sort"

	"github.com/google/uuid"
)

// ShortlistEntry represents a candidate projected onto the shortlist
// dimensions. All dimensions are 0..1 raw factor credits, higher is better.
type ShortlistEntry struct {
	ID            uuid.UUID `json:"id"`
	Affordability float64   `json:"affordability"`
	Location      float64   `json:"location"`
	Availability  float64   `json:"availability"`
	Lifestyle     float64   `json:"lifestyle"`
}

// Shortlist returns the Pareto-optimal candidates for a profile: those not
// dominated on all four dimensions by another candidate. Candidates with a
// dealbreaker are excluded up front. Output is sorted by ID for determinism.
// O(n^2) dominance check — fine for typical listing pool sizes.
func (s *Scorer) Shortlist(p *PreferenceProfile, candidates []*CandidateFeatures) []ShortlistEntry {
	var entries []ShortlistEntry
	for _, c := range candidates {
		res := s.ScoreOne(p, c)
		if len(res.Dealbreakers) > 0 {
			continue
		}
		entries = append(entries, ShortlistEntry{
			ID:            c.ID,
			Affordability: factorScore(res.Breakdown, FactorPrice),
			Location:      factorScore(res.Breakdown, FactorLocation),
			Availability:  factorScore(res.Breakdown, FactorTiming),
			Lifestyle:     factorScore(res.Breakdown, FactorLifestyle),
		})
	}
	if len(entries) <= 1 {
		return entries
	}

	var frontier []ShortlistEntry
	for i := range entries {
		dominated := false
		for j := range entries {
			if i == j {
				continue
			}
			if dominates(entries[j], entries[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, entries[i])
		}
	}

	sort.Slice(frontier, func(i, j int) bool {
		return frontier[i].ID.String() < frontier[j].ID.String()
	})
	return frontier
}

// dominates returns true if a is >= b on every dimension and strictly better
// on at least one.
func dominates(a, b ShortlistEntry) bool {
	if a.Affordability < b.Affordability || a.Location < b.Location ||
		a.Availability < b.Availability || a.Lifestyle < b.Lifestyle {
		return false
	}
	return a.Affordability > b.Affordability || a.Location > b.Location ||
		a.Availability > b.Availability || a.Lifestyle > b.Lifestyle
}

func factorScore(breakdown []FactorResult, name string) float64 {
	for _, f := range breakdown {
		if f.Name == name {
			return f.Score
		}
	}
	return 0
}
