package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/haven-living/matchd/internal/match"
)

// Profile is a searcher's persisted preference record, the output of the
// onboarding and enhance-profile flows.
type Profile struct {
	ID          uuid.UUID               `json:"id"`
	DisplayName string                  `json:"display_name"`
	Preferences match.PreferenceProfile `json:"preferences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Listing is a persisted property record. Features.ID always equals ID.
type Listing struct {
	ID       uuid.UUID               `json:"id"`
	Title    string                  `json:"title"`
	Features match.CandidateFeatures `json:"features"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileFilter struct {
	Limit  int
	Offset int
}

type ListingFilter struct {
	City     string
	MaxPrice int
	Limit    int
	Offset   int
}

// CatalogStats is the aggregate view exposed on /stats.
type CatalogStats struct {
	TotalProfiles   int     `json:"total_profiles"`
	TotalListings   int     `json:"total_listings"`
	AvgListingPrice float64 `json:"avg_listing_price"`
	DistinctCities  int     `json:"distinct_cities"`
}

type Store interface {
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error

	CreateListing(ctx context.Context, l *Listing) error
	GetListing(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)
	UpdateListing(ctx context.Context, l *Listing) error
	DeleteListing(ctx context.Context, id uuid.UUID) error

	GetStats(ctx context.Context) (*CatalogStats, error)

	Close() error
}
