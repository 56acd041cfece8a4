package services

import (
	"testing"
	"time"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

func TestComputeDNAScoresLuxuryRelaxedProfile(t *testing.T) {
	scores := ComputeDNAScores(luxuryProfile())

	if scores.Luxury < 90 {
		t.Fatalf("expected luxury >= 90, got %d", scores.Luxury)
	}
	if scores.Relaxation < 90 {
		t.Fatalf("expected relaxation >= 90, got %d", scores.Relaxation)
	}
}

func TestComputeDNAScoresStayWithinBounds(t *testing.T) {
	inputs := []*models.UserPreferences{
		nil,
		models.DefaultPreferences(1),
		{
			BudgetType:     models.BudgetUltraLuxury,
			PacePreference: models.PacePacked,
			ActivityTypes: []models.ActivityType{
				{Type: "hiking"}, {Type: "climbing"}, {Type: "diving"},
				{Type: "surfing"}, {Type: "trekking"}, {Type: "museum tours"},
				{Type: "art galleries"}, {Type: "temple visits"},
			},
			TravelStyle:        []string{"cultural", "group", "social", "luxury"},
			AccommodationStyle: []models.AccommodationEntry{{Style: "resort"}, {Style: "hostel"}, {Style: "hotel"}},
			PreferredCuisines: []models.CuisinePreference{
				{Cuisine: "thai"}, {Cuisine: "french"}, {Cuisine: "japanese"},
				{Cuisine: "mexican"}, {Cuisine: "italian"}, {Cuisine: "korean"},
			},
			DietaryRestrictions: []string{"vegetarian"},
			FrequentDestinations: []models.FrequentDestination{
				{City: "Lisbon"}, {City: "Tokyo"}, {City: "Oaxaca"},
				{City: "Rome"}, {City: "Bangkok"}, {City: "Seoul"}, {City: "Paris"},
			},
		},
	}

	for _, prefs := range inputs {
		scores := ComputeDNAScores(prefs)
		for _, dimension := range models.DNADimensions {
			value := scores.Dimension(dimension)
			if value < 0 || value > 100 {
				t.Fatalf("dimension %s out of bounds: %d", dimension, value)
			}
		}
	}
}

func TestComputeDNAScoresEmptyProfileBaselines(t *testing.T) {
	scores := ComputeDNAScores(models.DefaultPreferences(1))

	if scores.Social != 30 {
		t.Fatalf("expected social baseline 30, got %d", scores.Social)
	}
	if scores.Relaxation != 40 {
		t.Fatalf("expected relaxation baseline 40, got %d", scores.Relaxation)
	}
	if scores.Culinary != 30 {
		t.Fatalf("expected culinary baseline 30, got %d", scores.Culinary)
	}
	if scores.Adventure != 0 || scores.Culture != 0 || scores.Luxury != 0 {
		t.Fatalf("expected zero adventure/culture/luxury, got %+v", scores)
	}
}

func TestComputeDNAScoresPaceBonuses(t *testing.T) {
	prefs := models.DefaultPreferences(1)
	prefs.PacePreference = models.PacePacked
	if got := ComputeDNAScores(prefs).Adventure; got != 30 {
		t.Fatalf("expected packed pace adventure 30, got %d", got)
	}

	prefs.PacePreference = models.PaceModerate
	if got := ComputeDNAScores(prefs).Adventure; got != 15 {
		t.Fatalf("expected moderate pace adventure 15, got %d", got)
	}
}

func TestComputeDNAScoresCulinaryFormula(t *testing.T) {
	prefs := models.DefaultPreferences(1)
	prefs.PreferredCuisines = []models.CuisinePreference{{Cuisine: "thai"}, {Cuisine: "french"}}
	prefs.DietaryRestrictions = []string{"vegan"}

	// 30 + 15*2 cuisines + 20 dietary = 80.
	if got := ComputeDNAScores(prefs).Culinary; got != 80 {
		t.Fatalf("expected culinary 80, got %d", got)
	}
}

func TestClassifyArchetypeIsDeterministic(t *testing.T) {
	scores := models.DNAScores{Adventure: 75, Culture: 70, Luxury: 20, Social: 45, Relaxation: 30, Culinary: 55}

	first := ClassifyArchetype(scores)
	second := ClassifyArchetype(scores)
	if first != second {
		t.Fatalf("expected deterministic classification, got %q then %q", first, second)
	}
	if first != models.ArchetypeAdventureJunkie {
		t.Fatalf("expected adventure_junkie, got %q", first)
	}
}

func TestClassifyArchetypeRuleOrder(t *testing.T) {
	cases := []struct {
		name   string
		scores models.DNAScores
		want   string
	}{
		{
			name:   "adventure and culture",
			scores: models.DNAScores{Adventure: 90, Culture: 80, Luxury: 50, Social: 30, Relaxation: 20, Culinary: 10},
			want:   models.ArchetypeAdventureJunkie,
		},
		{
			name:   "culture and culinary",
			scores: models.DNAScores{Adventure: 10, Culture: 90, Luxury: 20, Social: 30, Relaxation: 40, Culinary: 85},
			want:   models.ArchetypeCultureSeeker,
		},
		{
			name:   "luxury and relaxation",
			scores: models.DNAScores{Adventure: 10, Culture: 20, Luxury: 95, Social: 30, Relaxation: 90, Culinary: 40},
			want:   models.ArchetypeLuxuryTraveler,
		},
		{
			name:   "relaxation primary on a budget",
			scores: models.DNAScores{Adventure: 20, Culture: 30, Luxury: 25, Social: 40, Relaxation: 95, Culinary: 35},
			want:   models.ArchetypeBeachLounger,
		},
		{
			name:   "culinary primary",
			scores: models.DNAScores{Adventure: 20, Culture: 30, Luxury: 45, Social: 40, Relaxation: 35, Culinary: 95},
			want:   models.ArchetypeFoodieWanderer,
		},
		{
			name:   "social primary",
			scores: models.DNAScores{Adventure: 20, Culture: 30, Luxury: 45, Social: 95, Relaxation: 35, Culinary: 40},
			want:   models.ArchetypeSocialButterfly,
		},
		{
			name:   "adventure primary on a shoestring",
			scores: models.DNAScores{Adventure: 95, Culture: 10, Luxury: 20, Social: 60, Relaxation: 35, Culinary: 40},
			want:   models.ArchetypeBudgetBackpacker,
		},
		{
			name:   "culture and social",
			scores: models.DNAScores{Adventure: 20, Culture: 90, Luxury: 45, Social: 80, Relaxation: 35, Culinary: 40},
			want:   models.ArchetypeUrbanExplorer,
		},
		{
			name:   "adventure and relaxation",
			scores: models.DNAScores{Adventure: 90, Culture: 20, Luxury: 45, Social: 30, Relaxation: 85, Culinary: 40},
			want:   models.ArchetypeNatureLover,
		},
		{
			name:   "fallback high luxury",
			scores: models.DNAScores{Adventure: 20, Culture: 30, Luxury: 75, Social: 50, Relaxation: 35, Culinary: 40},
			want:   models.ArchetypeLuxuryTraveler,
		},
		{
			name:   "all tied breaks on canonical dimension order",
			scores: models.DNAScores{Adventure: 40, Culture: 40, Luxury: 40, Social: 40, Relaxation: 40, Culinary: 40},
			want:   models.ArchetypeAdventureJunkie,
		},
		{
			name:   "final default",
			scores: models.DNAScores{Adventure: 10, Culture: 55, Luxury: 20, Social: 30, Relaxation: 50, Culinary: 20},
			want:   models.ArchetypeUrbanExplorer,
		},
	}

	for _, tc := range cases {
		if got := ClassifyArchetype(tc.scores); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestComputeCompletenessBounds(t *testing.T) {
	if got := ComputeCompleteness(nil); got != 0 {
		t.Fatalf("expected 0 for nil preferences, got %d", got)
	}
	if got := ComputeCompleteness(models.DefaultPreferences(1)); got != 0 {
		t.Fatalf("expected 0 for empty preferences, got %d", got)
	}

	now := time.Now().UTC()
	full := &models.UserPreferences{
		BudgetType:           models.BudgetMidRange,
		AccommodationStyle:   []models.AccommodationEntry{{Style: "hotel"}},
		PacePreference:       models.PaceModerate,
		PreferredCuisines:    []models.CuisinePreference{{Cuisine: "thai"}},
		FrequentDestinations: []models.FrequentDestination{{City: "Lisbon"}},
		DietaryRestrictions:  []string{"vegan"},
		TravelStyle:          []string{"cultural"},
		ActivityTypes:        []models.ActivityType{{Type: "hiking"}},
		LastCalculatedAt:     &now,
	}
	if got := ComputeCompleteness(full); got != 100 {
		t.Fatalf("expected 100 for full preferences, got %d", got)
	}
}

func TestBuildDNASummary(t *testing.T) {
	summary := BuildDNASummary(luxuryProfile())

	if summary.Archetype.Key != models.ArchetypeLuxuryTraveler {
		t.Fatalf("expected luxury_traveler, got %q", summary.Archetype.Key)
	}
	if summary.Stats.DominantDimension != "relaxation" {
		t.Fatalf("expected relaxation dominant, got %q", summary.Stats.DominantDimension)
	}
	if summary.Completeness != 40 {
		t.Fatalf("expected completeness 40, got %d", summary.Completeness)
	}
}
