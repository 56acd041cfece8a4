package models

import "time"

// Destination is a catalog entry destinations are recommended from. The six
// affinity columns mirror the DNA dimensions, each in [0,100].
type Destination struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Country            string    `json:"country"`
	Tags               []string  `json:"tags"`
	AdventureAffinity  int       `json:"adventure_affinity"`
	CultureAffinity    int       `json:"culture_affinity"`
	LuxuryAffinity     int       `json:"luxury_affinity"`
	SocialAffinity     int       `json:"social_affinity"`
	RelaxationAffinity int       `json:"relaxation_affinity"`
	CulinaryAffinity   int       `json:"culinary_affinity"`
	CreatedAt          time.Time `json:"created_at"`
}

// Affinity returns the named dimension affinity.
func (d Destination) Affinity(dimension string) int {
	switch dimension {
	case "adventure":
		return d.AdventureAffinity
	case "culture":
		return d.CultureAffinity
	case "luxury":
		return d.LuxuryAffinity
	case "social":
		return d.SocialAffinity
	case "relaxation":
		return d.RelaxationAffinity
	case "culinary":
		return d.CulinaryAffinity
	}
	return 0
}

// DestinationWithScore pairs a destination with its personalization score.
type DestinationWithScore struct {
	Destination
	MatchScore int `json:"match_score"`
}
