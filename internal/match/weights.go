package match

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each scoring factor as a share
// of 100. Only the factors a searcher stated a preference for keep their
// weight on a given call; those shares are rescaled so the applicable weights
// still sum to 100.
type WeightSet struct {
	Price     float64
	Location  float64
	Capacity  float64
	Timing    float64
	Amenities float64
	Lifestyle float64
}

// DefaultWeights returns the standard weight table.
func DefaultWeights() WeightSet {
	return WeightSet{
		Price:     25,
		Location:  20,
		Capacity:  15,
		Timing:    15,
		Amenities: 15,
		Lifestyle: 10,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Price + w.Location + w.Capacity + w.Timing + w.Amenities + w.Lifestyle
}

// Validate checks that weights sum to 100 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-100) > 0.01 {
		return fmt.Errorf("weights sum to %.4f, must sum to 100", w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

func (w WeightSet) asList() []float64 {
	return []float64{w.Price, w.Location, w.Capacity, w.Timing, w.Amenities, w.Lifestyle}
}

// Params holds the tunable thresholds of the scoring algorithm.
type Params struct {
	// PriceTolerance is the fraction outside the budget bound at which the
	// price credit decays to zero (0.10 = 10% over budget earns nothing).
	PriceTolerance float64
	// TimingGraceDays is the window after the desired move-in date over which
	// a later availability still earns linear partial credit.
	TimingGraceDays int
	// CityShare is the portion of the location weight guaranteed by a city
	// match when the searcher also named neighborhoods.
	CityShare float64
	// Workers bounds the parallel fan-out of ScoreMany.
	Workers int
}

// DefaultParams returns the standard thresholds.
func DefaultParams() Params {
	return Params{
		PriceTolerance:  0.10,
		TimingGraceDays: 14,
		CityShare:       0.60,
		Workers:         4,
	}
}

// Validate checks thresholds are in sane ranges.
func (p Params) Validate() error {
	if p.PriceTolerance <= 0 || p.PriceTolerance > 1 {
		return fmt.Errorf("price tolerance %.2f out of (0, 1]", p.PriceTolerance)
	}
	if p.TimingGraceDays < 0 {
		return fmt.Errorf("timing grace days %d is negative", p.TimingGraceDays)
	}
	if p.CityShare < 0 || p.CityShare > 1 {
		return fmt.Errorf("city share %.2f out of [0, 1]", p.CityShare)
	}
	return nil
}
