package match

// QuickFit is a cheap pre-gate for bulk jobs: it rejects candidates that full
// scoring could never rank well — a tri-state mismatch, a city outside the
// stated set, or a price beyond the decay tolerance. It never rejects on
// factors that only lower rank within tolerance.
func (s *Scorer) QuickFit(p *PreferenceProfile, c *CandidateFeatures) bool {
	if _, dealbreakers := AmenityFactor(p, c); len(dealbreakers) > 0 {
		return false
	}
	if len(p.PreferredCities) > 0 && !containsFold(p.PreferredCities, c.City) {
		return false
	}
	lo, hi := budgetBounds(p)
	price := float64(c.Price)
	if hi != nil && price > *hi*(1+s.params.PriceTolerance) {
		return false
	}
	if lo != nil && price < *lo*(1-s.params.PriceTolerance) {
		return false
	}
	return true
}
