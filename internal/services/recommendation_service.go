package services

import (
	"context"
	"sort"
	"strings"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

type DestinationLister interface {
	ListAll(ctx context.Context) ([]models.Destination, error)
}

// RecommendationService scores the destination catalog against a user's
// Travel DNA and returns the best matches.
type RecommendationService struct {
	destinationRepo DestinationLister
}

func NewRecommendationService(destinationRepo DestinationLister) *RecommendationService {
	return &RecommendationService{destinationRepo: destinationRepo}
}

func (s *RecommendationService) GetRecommendedDestinations(
	ctx context.Context,
	prefs *models.UserPreferences,
	limit int,
) ([]models.DestinationWithScore, error) {
	destinations, err := s.destinationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scores := ComputeDNAScores(prefs)
	matched := make([]models.DestinationWithScore, 0, len(destinations))
	for _, dest := range destinations {
		matched = append(matched, models.DestinationWithScore{
			Destination: dest,
			MatchScore:  calculateDestinationScore(scores, prefs, &dest),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// calculateDestinationScore blends the DNA/affinity alignment with direct
// travel-style tag matches. The dimension part normalizes to [0,100]; tag
// matches add 10 each, capped at 30.
func calculateDestinationScore(scores models.DNAScores, prefs *models.UserPreferences, dest *models.Destination) int {
	score := 0
	for _, dimension := range models.DNADimensions {
		score += scores.Dimension(dimension) * dest.Affinity(dimension) / 100
	}
	score /= len(models.DNADimensions)

	if prefs != nil {
		tagBonus := 0
		for _, style := range prefs.TravelStyle {
			if destinationHasTag(dest, style) {
				tagBonus += 10
			}
		}
		if tagBonus > 30 {
			tagBonus = 30
		}
		score += tagBonus
	}

	return score
}

func destinationHasTag(dest *models.Destination, tag string) bool {
	for _, destTag := range dest.Tags {
		if strings.EqualFold(destTag, tag) {
			return true
		}
	}
	return false
}
