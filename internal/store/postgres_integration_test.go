//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/haven-living/matchd/internal/match"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE haven_profiles CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE haven_listings CASCADE")
		s.Close()
	})

	return s
}

func TestCreateAndGetProfile(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	budget := 800
	moveIn := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	p := &Profile{
		DisplayName: "Integration Searcher",
		Preferences: match.PreferenceProfile{
			BudgetMax:       &budget,
			PreferredCities: []string{"Brussels"},
			MoveInDate:      &moveIn,
			Lifestyle:       map[string]int{"cleanliness": 8},
		},
	}
	if err := s.CreateProfile(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected generated id")
	}

	got, err := s.GetProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected profile, got nil")
	}
	if got.DisplayName != p.DisplayName {
		t.Errorf("display name round-trip: got %q", got.DisplayName)
	}
	if got.Preferences.BudgetMax == nil || *got.Preferences.BudgetMax != 800 {
		t.Errorf("budget round-trip failed: %v", got.Preferences.BudgetMax)
	}
	if got.Preferences.Lifestyle["cleanliness"] != 8 {
		t.Errorf("lifestyle round-trip failed: %v", got.Preferences.Lifestyle)
	}
}

func TestListListingsWithFilters(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, tc := range []struct {
		city  string
		price int
	}{
		{"Brussels", 700},
		{"Brussels", 1200},
		{"Antwerp", 650},
	} {
		l := &Listing{
			Title:    "Listing in " + tc.city,
			Features: match.CandidateFeatures{City: tc.city, Price: tc.price, Bedrooms: 2},
		}
		if err := s.CreateListing(ctx, l); err != nil {
			t.Fatalf("create listing: %v", err)
		}
		if l.Features.ID != l.ID {
			t.Error("expected feature id synced to listing id")
		}
	}

	brussels, err := s.ListListings(ctx, ListingFilter{City: "brussels"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(brussels) != 2 {
		t.Errorf("expected 2 Brussels listings, got %d", len(brussels))
	}

	affordable, err := s.ListListings(ctx, ListingFilter{City: "Brussels", MaxPrice: 800})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(affordable) != 1 {
		t.Errorf("expected 1 affordable Brussels listing, got %d", len(affordable))
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalListings != 3 {
		t.Errorf("expected 3 listings in stats, got %d", stats.TotalListings)
	}
	if stats.DistinctCities != 2 {
		t.Errorf("expected 2 distinct cities, got %d", stats.DistinctCities)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	p, err := s.GetProfile(ctx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("expected nil for missing profile")
	}
}
