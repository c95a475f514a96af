package match

import (
	"testing"

	"github.com/google/uuid"
)

func TestShortlistDominance(t *testing.T) {
	s := testScorer()
	p := &PreferenceProfile{
		BudgetMax:       intPtr(1000),
		PreferredCities: []string{"Brussels"},
		Lifestyle:       map[string]int{"cleanliness": 8},
	}

	best := &CandidateFeatures{
		ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Price: 700, City: "Brussels",
		Lifestyle: map[string]int{"cleanliness": 8},
	}
	dominated := &CandidateFeatures{
		ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Price: 1050, City: "Brussels",
		Lifestyle: map[string]int{"cleanliness": 2},
	}

	frontier := s.Shortlist(p, []*CandidateFeatures{dominated, best})
	if len(frontier) != 1 {
		t.Fatalf("expected 1 frontier member, got %d", len(frontier))
	}
	if frontier[0].ID != best.ID {
		t.Errorf("expected %s on frontier, got %s", best.ID, frontier[0].ID)
	}
}

func TestShortlistKeepsTradeOffs(t *testing.T) {
	s := testScorer()
	p := &PreferenceProfile{
		BudgetMax:       intPtr(1000),
		PreferredCities: []string{"Brussels"},
		Lifestyle:       map[string]int{"cleanliness": 8},
	}

	cheapElsewhere := &CandidateFeatures{
		ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Price: 600, City: "Antwerp",
		Lifestyle: map[string]int{"cleanliness": 8},
	}
	priceyInTown := &CandidateFeatures{
		ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Price: 1050, City: "Brussels",
		Lifestyle: map[string]int{"cleanliness": 8},
	}

	frontier := s.Shortlist(p, []*CandidateFeatures{cheapElsewhere, priceyInTown})
	if len(frontier) != 2 {
		t.Errorf("neither candidate dominates the other, expected both, got %d", len(frontier))
	}
}

func TestShortlistExcludesDealbreakers(t *testing.T) {
	s := testScorer()
	p := &PreferenceProfile{PetsAllowed: boolPtr(false)}
	c := &CandidateFeatures{ID: uuid.New(), Price: 500, PetsAllowed: true}

	if frontier := s.Shortlist(p, []*CandidateFeatures{c}); len(frontier) != 0 {
		t.Errorf("dealbreaker candidates must not make the shortlist, got %d", len(frontier))
	}
}

func TestShortlistSingleCandidate(t *testing.T) {
	s := testScorer()
	c := &CandidateFeatures{ID: uuid.New(), Price: 500}
	frontier := s.Shortlist(&PreferenceProfile{}, []*CandidateFeatures{c})
	if len(frontier) != 1 {
		t.Errorf("expected 1 frontier member, got %d", len(frontier))
	}
}
