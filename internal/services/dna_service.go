package services

import (
	"sort"
	"strings"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

// Activity keywords feeding the adventure and culture dimensions.
var adventureKeywords = []string{
	"hiking", "adventure", "outdoor", "climbing", "diving", "surfing",
	"kayaking", "safari", "skiing", "trekking", "extreme",
}

var cultureKeywords = []string{
	"museum", "culture", "history", "art", "architecture", "temple",
	"heritage", "gallery", "theater",
}

// ComputeDNAScores derives the six dimension scores from a preference
// record. Each dimension is computed independently and clamped to [0,100];
// the whole computation is pure.
func ComputeDNAScores(prefs *models.UserPreferences) models.DNAScores {
	if prefs == nil {
		prefs = models.DefaultPreferences(0)
	}
	return models.DNAScores{
		Adventure:  clampScore(adventureScore(prefs)),
		Culture:    clampScore(cultureScore(prefs)),
		Luxury:     clampScore(luxuryScore(prefs)),
		Social:     clampScore(socialScore(prefs)),
		Relaxation: clampScore(relaxationScore(prefs)),
		Culinary:   clampScore(culinaryScore(prefs)),
	}
}

func adventureScore(prefs *models.UserPreferences) int {
	score := matchedActivities(prefs.ActivityTypes, adventureKeywords) * 25
	if score > 100 {
		score = 100
	}
	switch prefs.PacePreference {
	case models.PacePacked:
		score += 30
	case models.PaceModerate:
		score += 15
	}
	return score
}

func cultureScore(prefs *models.UserPreferences) int {
	score := matchedActivities(prefs.ActivityTypes, cultureKeywords) * 20
	if hasTag(prefs.TravelStyle, "cultural") {
		score += 40
	}
	destinationBonus := len(prefs.FrequentDestinations) * 5
	if destinationBonus > 30 {
		destinationBonus = 30
	}
	return score + destinationBonus
}

func luxuryScore(prefs *models.UserPreferences) int {
	score := 0
	switch prefs.BudgetType {
	case models.BudgetShoestring:
		score = 10
	case models.BudgetMidRange:
		score = 40
	case models.BudgetLuxury:
		score = 70
	case models.BudgetUltraLuxury:
		score = 90
	}
	if hasAccommodation(prefs.AccommodationStyle, "resort") || hasAccommodation(prefs.AccommodationStyle, "hotel") {
		score += 20
	}
	return score
}

func socialScore(prefs *models.UserPreferences) int {
	score := 0
	if hasTag(prefs.TravelStyle, "group") {
		score += 60
	}
	if hasTag(prefs.TravelStyle, "social") {
		score += 40
	}
	if hasAccommodation(prefs.AccommodationStyle, "hostel") {
		score += 30
	}
	if score == 0 {
		// No social signal at all reads as a moderate baseline, not zero.
		score = 30
	}
	return score
}

func relaxationScore(prefs *models.UserPreferences) int {
	score := 0
	switch prefs.PacePreference {
	case models.PaceRelaxed:
		score = 80
	case models.PaceModerate:
		score = 50
	case models.PacePacked:
		score = 20
	}
	if hasAccommodation(prefs.AccommodationStyle, "resort") {
		score += 20
	}
	if score == 0 {
		score = 40
	}
	return score
}

func culinaryScore(prefs *models.UserPreferences) int {
	score := 0
	if n := len(prefs.PreferredCuisines); n > 0 {
		score = 30 + 15*n
		if score > 100 {
			score = 100
		}
	}
	if len(prefs.DietaryRestrictions) > 0 {
		score += 20
	}
	if score == 0 {
		score = 30
	}
	return score
}

// ClassifyArchetype ranks the six dimensions and applies the ordered pattern
// rules, first match wins. The rule order is the classification algorithm;
// changing it changes results.
func ClassifyArchetype(scores models.DNAScores) string {
	ranked := rankDimensions(scores)
	primary, secondary := ranked[0], ranked[1]

	switch {
	case primary == "adventure" && secondary == "culture":
		return models.ArchetypeAdventureJunkie
	case primary == "culture" && secondary == "culinary":
		return models.ArchetypeCultureSeeker
	case primary == "luxury" && secondary == "relaxation":
		return models.ArchetypeLuxuryTraveler
	case primary == "relaxation" && scores.Luxury < 40:
		return models.ArchetypeBeachLounger
	case primary == "culinary":
		return models.ArchetypeFoodieWanderer
	case primary == "social":
		return models.ArchetypeSocialButterfly
	case primary == "adventure" && scores.Luxury < 30:
		return models.ArchetypeBudgetBackpacker
	case primary == "culture" && secondary == "social":
		return models.ArchetypeUrbanExplorer
	case primary == "adventure" && secondary == "relaxation":
		return models.ArchetypeNatureLover
	}

	// Coarser absolute-threshold fallbacks.
	switch {
	case scores.Luxury > 70:
		return models.ArchetypeLuxuryTraveler
	case scores.Culture > 60:
		return models.ArchetypeCultureSeeker
	case scores.Adventure > 60:
		return models.ArchetypeAdventureJunkie
	}

	return models.ArchetypeUrbanExplorer
}

// rankDimensions sorts dimension names by score descending; ties break on
// the canonical dimension order so classification stays deterministic.
func rankDimensions(scores models.DNAScores) []string {
	ranked := make([]string, len(models.DNADimensions))
	copy(ranked, models.DNADimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores.Dimension(ranked[i]) > scores.Dimension(ranked[j])
	})
	return ranked
}

// Completeness weights over the nine tracked profile fields. They sum to
// 100, so the satisfied sum is already a percentage.
var completenessWeights = []struct {
	weight    int
	satisfied func(*models.UserPreferences) bool
}{
	{15, func(p *models.UserPreferences) bool { return p.BudgetType != "" }},
	{15, func(p *models.UserPreferences) bool { return len(p.AccommodationStyle) > 0 }},
	{10, func(p *models.UserPreferences) bool { return p.PacePreference != "" }},
	{10, func(p *models.UserPreferences) bool { return len(p.PreferredCuisines) > 0 }},
	{10, func(p *models.UserPreferences) bool { return len(p.FrequentDestinations) > 0 }},
	{5, func(p *models.UserPreferences) bool { return len(p.DietaryRestrictions) > 0 }},
	{10, func(p *models.UserPreferences) bool { return len(p.TravelStyle) > 0 }},
	{10, func(p *models.UserPreferences) bool { return len(p.ActivityTypes) > 0 }},
	{15, func(p *models.UserPreferences) bool { return p.LastCalculatedAt != nil }},
}

// ComputeCompleteness returns the weighted percentage of profile fields the
// user has filled in, in [0,100].
func ComputeCompleteness(prefs *models.UserPreferences) int {
	if prefs == nil {
		return 0
	}
	total := 0
	for _, field := range completenessWeights {
		if field.satisfied(prefs) {
			total += field.weight
		}
	}
	return total
}

// DNASummary is the display-ready profile: scores, the archetype definition
// and summary statistics.
type DNASummary struct {
	Scores       models.DNAScores           `json:"scores"`
	Archetype    models.ArchetypeDefinition `json:"archetype"`
	Completeness int                        `json:"completeness"`
	Stats        DNAStats                   `json:"stats"`
}

type DNAStats struct {
	DominantDimension  string `json:"dominant_dimension"`
	SecondaryDimension string `json:"secondary_dimension"`
	AverageScore       int    `json:"average_score"`
}

// BuildDNASummary assembles the full Travel DNA view for a preference set.
func BuildDNASummary(prefs *models.UserPreferences) DNASummary {
	scores := ComputeDNAScores(prefs)
	ranked := rankDimensions(scores)
	average := (scores.Adventure + scores.Culture + scores.Luxury +
		scores.Social + scores.Relaxation + scores.Culinary) / len(models.DNADimensions)

	return DNASummary{
		Scores:       scores,
		Archetype:    models.ArchetypeByKey(ClassifyArchetype(scores)),
		Completeness: ComputeCompleteness(prefs),
		Stats: DNAStats{
			DominantDimension:  ranked[0],
			SecondaryDimension: ranked[1],
			AverageScore:       average,
		},
	}
}

func matchedActivities(activities []models.ActivityType, keywords []string) int {
	matches := 0
	for _, activity := range activities {
		activityType := strings.ToLower(activity.Type)
		for _, keyword := range keywords {
			if strings.Contains(activityType, keyword) {
				matches++
				break
			}
		}
	}
	return matches
}

func hasTag(tags []string, target string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, target) {
			return true
		}
	}
	return false
}

func hasAccommodation(entries []models.AccommodationEntry, style string) bool {
	for _, entry := range entries {
		if strings.EqualFold(entry.Style, style) {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
