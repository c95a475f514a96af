package events

import "time"

type ProfileEvent struct {
	ProfileID string `json:"profile_id"`
}

type ListingEvent struct {
	ListingID string `json:"listing_id"`
	City      string `json:"city,omitempty"`
	Price     int    `json:"price,omitempty"`
}

// MatchSuggestedEvent is published by the digest worker when a listing ranks
// at or above the suggestion threshold for a profile.
type MatchSuggestedEvent struct {
	ProfileID string    `json:"profile_id"`
	ListingID string    `json:"listing_id"`
	Score     float64   `json:"score"`
	Rank      int       `json:"rank"`
	Timestamp time.Time `json:"timestamp"`
}
