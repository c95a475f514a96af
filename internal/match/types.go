package match

import (
	"time"

	"github.com/google/uuid"
)

// PreferenceProfile is a searcher's stated wants. Every field is optional;
// nil (or empty) means "no preference" and the corresponding factor weight is
// redistributed among the factors the searcher did state.
type PreferenceProfile struct {
	BudgetMin *int `json:"budget_min,omitempty"`
	BudgetMax *int `json:"budget_max,omitempty"`

	PreferredCities        []string `json:"preferred_cities,omitempty"`
	PreferredNeighborhoods []string `json:"preferred_neighborhoods,omitempty"`

	MinBedrooms  *int `json:"min_bedrooms,omitempty"`
	MinBathrooms *int `json:"min_bathrooms,omitempty"`

	// MoveInDate is the day the searcher wants to move in. A candidate that
	// becomes available later only earns timing credit within the grace window.
	MoveInDate *time.Time `json:"move_in_date,omitempty"`

	// Tri-state amenity/policy requirements. nil = no preference,
	// true/false = the candidate's flag must equal this value.
	Furnished      *bool `json:"furnished,omitempty"`
	Balcony        *bool `json:"balcony,omitempty"`
	Parking        *bool `json:"parking,omitempty"`
	SmokingAllowed *bool `json:"smoking_allowed,omitempty"`
	PetsAllowed    *bool `json:"pets_allowed,omitempty"`

	// Lifestyle maps trait names (cleanliness, noise_level, social_level, ...)
	// to a 1-10 self-rating.
	Lifestyle map[string]int `json:"lifestyle,omitempty"`
}

// CandidateFeatures describes the property (or resident) being evaluated.
type CandidateFeatures struct {
	ID uuid.UUID `json:"id"`

	Price        int    `json:"price"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`

	// AvailableFrom nil means immediately available.
	AvailableFrom *time.Time `json:"available_from,omitempty"`

	Furnished      bool `json:"furnished"`
	Balcony        bool `json:"balcony"`
	Parking        bool `json:"parking"`
	SmokingAllowed bool `json:"smoking_allowed"`
	PetsAllowed    bool `json:"pets_allowed"`

	Lifestyle map[string]int `json:"lifestyle,omitempty"`
}

// FactorResult captures one factor's contribution to the total score.
type FactorResult struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`        // raw credit in 0..1, before weighting
	Weight       float64 `json:"weight"`       // share of 100 after redistribution
	Contribution float64 `json:"contribution"` // Score * Weight
	Matched      bool    `json:"matched"`      // factor earned its full weight
	Applicable   bool    `json:"applicable"`   // searcher stated a preference
	Reason       string  `json:"reason"`
}

// MatchResult is the immutable output of scoring one profile against one
// candidate. Breakdown always holds all six factors in evaluation order
// (price, location, capacity, timing, amenities, lifestyle), even when a
// factor contributed nothing. When Dealbreakers is non-empty the Score is
// zero but the breakdown keeps each factor's pre-zeroing contribution.
type MatchResult struct {
	Score        float64        `json:"score"`
	Breakdown    []FactorResult `json:"breakdown"`
	Dealbreakers []string       `json:"dealbreakers,omitempty"`
}

// RankedMatch pairs a candidate with its result in a ranked listing.
type RankedMatch struct {
	Candidate *CandidateFeatures `json:"candidate"`
	Result    MatchResult        `json:"result"`
}
