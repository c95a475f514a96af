package match

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Factor names, in evaluation order.
const (
	FactorPrice     = "price"
	FactorLocation  = "location"
	FactorCapacity  = "capacity"
	FactorTiming    = "timing"
	FactorAmenities = "amenities"
	FactorLifestyle = "lifestyle"
)

// --- Individual factor calculators ---

// PriceFactor scores how well the candidate's price sits inside the budget.
// Prices outside a bound decay linearly and earn nothing beyond the tolerance
// fraction; an over-budget candidate is never a dealbreaker, it only ranks
// lower. Price is a baseline factor: with no budget stated it stays in the
// breakdown with zero credit.
func PriceFactor(p *PreferenceProfile, c *CandidateFeatures, params Params) FactorResult {
	r := FactorResult{Name: FactorPrice, Applicable: true}
	if p.BudgetMin == nil && p.BudgetMax == nil {
		r.Reason = "no budget stated"
		return r
	}

	lo, hi := budgetBounds(p)
	price := float64(c.Price)

	switch {
	case (lo == nil || price >= *lo) && (hi == nil || price <= *hi):
		r.Score = 1
		r.Matched = true
		r.Reason = "within budget"
	case hi != nil && price > *hi:
		over := (price - *hi) / *hi
		if over < params.PriceTolerance {
			r.Score = 1 - over/params.PriceTolerance
		}
		r.Reason = fmt.Sprintf("%.0f%% over budget", over*100)
	default: // lo != nil && price < *lo
		under := (*lo - price) / *lo
		if under < params.PriceTolerance {
			r.Score = 1 - under/params.PriceTolerance
		}
		r.Reason = fmt.Sprintf("%.0f%% under budget floor", under*100)
	}
	return r
}

// budgetBounds returns the budget range with a malformed range silently
// swapped; a nil side is unbounded.
func budgetBounds(p *PreferenceProfile) (lo, hi *float64) {
	if p.BudgetMin != nil {
		v := float64(*p.BudgetMin)
		lo = &v
	}
	if p.BudgetMax != nil {
		v := float64(*p.BudgetMax)
		hi = &v
	}
	if lo != nil && hi != nil && *lo > *hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// LocationFactor requires a city match (case-insensitive) to earn anything.
// When the searcher also named neighborhoods, the city match alone guarantees
// the CityShare portion and an exact neighborhood match earns the rest.
// Location is a baseline factor: with no cities stated it stays in the
// breakdown with zero credit.
func LocationFactor(p *PreferenceProfile, c *CandidateFeatures, params Params) FactorResult {
	r := FactorResult{Name: FactorLocation, Applicable: true}
	if len(p.PreferredCities) == 0 {
		r.Reason = "no city preference"
		return r
	}
	if !containsFold(p.PreferredCities, c.City) {
		r.Reason = "city not among preferred"
		return r
	}
	if len(p.PreferredNeighborhoods) == 0 {
		r.Score = 1
		r.Matched = true
		r.Reason = "city matched"
		return r
	}
	if containsFold(p.PreferredNeighborhoods, c.Neighborhood) {
		r.Score = 1
		r.Matched = true
		r.Reason = "city and neighborhood matched"
		return r
	}
	r.Score = params.CityShare
	r.Reason = "city matched, neighborhood differs"
	return r
}

func containsFold(set []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// CapacityFactor splits its weight evenly across the room minimums the
// searcher stated. Meeting or exceeding a minimum earns that share in full;
// falling short earns zero for the sub-check, never a penalty.
func CapacityFactor(p *PreferenceProfile, c *CandidateFeatures) FactorResult {
	r := FactorResult{Name: FactorCapacity}
	type subCheck struct {
		name string
		min  *int
		have int
	}
	checks := []subCheck{
		{"bedrooms", p.MinBedrooms, c.Bedrooms},
		{"bathrooms", p.MinBathrooms, c.Bathrooms},
	}

	var stated, satisfied int
	var short []string
	for _, ck := range checks {
		if ck.min == nil {
			continue
		}
		stated++
		if ck.have >= *ck.min {
			satisfied++
		} else {
			short = append(short, ck.name)
		}
	}
	if stated == 0 {
		r.Reason = "no room minimums stated"
		return r
	}

	r.Applicable = true
	r.Score = float64(satisfied) / float64(stated)
	r.Matched = satisfied == stated
	if r.Matched {
		r.Reason = "room minimums met"
	} else {
		r.Reason = "short on " + strings.Join(short, ", ")
	}
	return r
}

// TimingFactor gives full credit when the candidate is available on or before
// the desired move-in date, linear partial credit inside the grace window,
// and nothing beyond it. A nil AvailableFrom means immediately available.
func TimingFactor(p *PreferenceProfile, c *CandidateFeatures, params Params) FactorResult {
	r := FactorResult{Name: FactorTiming}
	if p.MoveInDate == nil {
		r.Reason = "no move-in date stated"
		return r
	}
	r.Applicable = true

	if c.AvailableFrom == nil || !c.AvailableFrom.After(*p.MoveInDate) {
		r.Score = 1
		r.Matched = true
		r.Reason = "available by move-in date"
		return r
	}

	grace := float64(params.TimingGraceDays)
	gapDays := c.AvailableFrom.Sub(*p.MoveInDate).Hours() / 24
	if grace > 0 && gapDays < grace {
		r.Score = 1 - gapDays/grace
		r.Reason = fmt.Sprintf("available %.0f days after move-in", gapDays)
	} else {
		r.Reason = "available beyond grace window"
	}
	return r
}

// AmenityFactor splits its weight evenly across the tri-state fields the
// searcher stated. A stated preference that mismatches the candidate's flag
// is a dealbreaker: the sub-field name is returned and the caller zeroes the
// whole match score.
func AmenityFactor(p *PreferenceProfile, c *CandidateFeatures) (FactorResult, []string) {
	r := FactorResult{Name: FactorAmenities}
	type triCheck struct {
		name string
		want *bool
		have bool
	}
	checks := []triCheck{
		{"furnished", p.Furnished, c.Furnished},
		{"balcony", p.Balcony, c.Balcony},
		{"parking", p.Parking, c.Parking},
		{"smoking", p.SmokingAllowed, c.SmokingAllowed},
		{"pets", p.PetsAllowed, c.PetsAllowed},
	}

	var stated int
	for _, ck := range checks {
		if ck.want != nil {
			stated++
		}
	}
	if stated == 0 {
		r.Reason = "no amenity requirements stated"
		return r, nil
	}

	r.Applicable = true
	share := 1 / float64(stated)
	var dealbreakers []string
	for _, ck := range checks {
		if ck.want == nil {
			continue
		}
		if *ck.want == ck.have {
			r.Score += share
		} else {
			dealbreakers = append(dealbreakers, ck.name)
		}
	}
	if len(dealbreakers) == 0 {
		r.Score = 1 // exact, not a sum of float shares
		r.Matched = true
		r.Reason = "all requirements met"
	} else {
		r.Reason = "mismatch on " + strings.Join(dealbreakers, ", ")
	}
	return r, dealbreakers
}

// LifestyleFactor averages the normalized closeness 1-|a-b|/9 over traits
// present on both sides of the 1-10 scale. Traits stated by only one side are
// ignored, earning neither credit nor penalty.
func LifestyleFactor(p *PreferenceProfile, c *CandidateFeatures) FactorResult {
	r := FactorResult{Name: FactorLifestyle}
	if len(p.Lifestyle) == 0 {
		r.Reason = "no lifestyle traits stated"
		return r
	}
	r.Applicable = true

	traits := make([]string, 0, len(p.Lifestyle))
	for name := range p.Lifestyle {
		if _, ok := c.Lifestyle[name]; ok {
			traits = append(traits, name)
		}
	}
	if len(traits) == 0 {
		r.Reason = "no shared lifestyle traits"
		return r
	}
	sort.Strings(traits)

	var sum float64
	for _, name := range traits {
		a := clampTrait(p.Lifestyle[name])
		b := clampTrait(c.Lifestyle[name])
		sum += 1 - math.Abs(float64(a-b))/9
	}
	r.Score = sum / float64(len(traits))
	r.Matched = r.Score >= 1
	r.Reason = fmt.Sprintf("%d shared traits compared", len(traits))
	return r
}

func clampTrait(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
