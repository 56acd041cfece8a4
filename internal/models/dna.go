package models

// DNAScores holds the six travel personality dimensions, each in [0,100].
// Scores are derived on demand from a preference record and never persisted.
type DNAScores struct {
	Adventure  int `json:"adventure"`
	Culture    int `json:"culture"`
	Luxury     int `json:"luxury"`
	Social     int `json:"social"`
	Relaxation int `json:"relaxation"`
	Culinary   int `json:"culinary"`
}

// Dimension names in canonical order. The order doubles as the tie-break
// when ranking dimensions.
var DNADimensions = []string{"adventure", "culture", "luxury", "social", "relaxation", "culinary"}

// Dimension returns the named score.
func (s DNAScores) Dimension(name string) int {
	switch name {
	case "adventure":
		return s.Adventure
	case "culture":
		return s.Culture
	case "luxury":
		return s.Luxury
	case "social":
		return s.Social
	case "relaxation":
		return s.Relaxation
	case "culinary":
		return s.Culinary
	}
	return 0
}

// Travel archetype identifiers.
const (
	ArchetypeUrbanExplorer    = "urban_explorer"
	ArchetypeBeachLounger     = "beach_lounger"
	ArchetypeCultureSeeker    = "culture_seeker"
	ArchetypeAdventureJunkie  = "adventure_junkie"
	ArchetypeLuxuryTraveler   = "luxury_traveler"
	ArchetypeFoodieWanderer   = "foodie_wanderer"
	ArchetypeSocialButterfly  = "social_butterfly"
	ArchetypeNatureLover      = "nature_lover"
	ArchetypeBudgetBackpacker = "budget_backpacker"
	ArchetypeDigitalNomad     = "digital_nomad"
)

// ArchetypeDefinition is the static display definition of an archetype.
type ArchetypeDefinition struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	Icon          string   `json:"icon"`
	Description   string   `json:"description"`
	PrimaryTraits []string `json:"primary_traits"`
	ColorTheme    string   `json:"color_theme"`
}

var archetypeDefinitions = map[string]ArchetypeDefinition{
	ArchetypeUrbanExplorer: {
		Key:           ArchetypeUrbanExplorer,
		Label:         "Urban Explorer",
		Icon:          "🏙️",
		Description:   "Thrives on city energy, neighborhood wandering and local scenes.",
		PrimaryTraits: []string{"culture", "social"},
		ColorTheme:    "slate",
	},
	ArchetypeBeachLounger: {
		Key:           ArchetypeBeachLounger,
		Label:         "Beach Lounger",
		Icon:          "🏖️",
		Description:   "Happiest with sand, sun and absolutely nothing on the agenda.",
		PrimaryTraits: []string{"relaxation"},
		ColorTheme:    "aqua",
	},
	ArchetypeCultureSeeker: {
		Key:           ArchetypeCultureSeeker,
		Label:         "Culture Seeker",
		Icon:          "🏛️",
		Description:   "Plans trips around museums, history and the local table.",
		PrimaryTraits: []string{"culture", "culinary"},
		ColorTheme:    "amber",
	},
	ArchetypeAdventureJunkie: {
		Key:           ArchetypeAdventureJunkie,
		Label:         "Adventure Junkie",
		Icon:          "🧗",
		Description:   "Chases trails, peaks and anything with an adrenaline rating.",
		PrimaryTraits: []string{"adventure", "culture"},
		ColorTheme:    "forest",
	},
	ArchetypeLuxuryTraveler: {
		Key:           ArchetypeLuxuryTraveler,
		Label:         "Luxury Traveler",
		Icon:          "🥂",
		Description:   "Five stars, fine dining and seamless everything.",
		PrimaryTraits: []string{"luxury", "relaxation"},
		ColorTheme:    "gold",
	},
	ArchetypeFoodieWanderer: {
		Key:           ArchetypeFoodieWanderer,
		Label:         "Foodie Wanderer",
		Icon:          "🍜",
		Description:   "Builds the itinerary around markets, street food and reservations.",
		PrimaryTraits: []string{"culinary"},
		ColorTheme:    "chili",
	},
	ArchetypeSocialButterfly: {
		Key:           ArchetypeSocialButterfly,
		Label:         "Social Butterfly",
		Icon:          "🦋",
		Description:   "Travels for the people: group trips, hostels and new friends.",
		PrimaryTraits: []string{"social"},
		ColorTheme:    "violet",
	},
	ArchetypeNatureLover: {
		Key:           ArchetypeNatureLover,
		Label:         "Nature Lover",
		Icon:          "🌲",
		Description:   "Quiet trails, open landscapes and time away from the crowds.",
		PrimaryTraits: []string{"adventure", "relaxation"},
		ColorTheme:    "moss",
	},
	ArchetypeBudgetBackpacker: {
		Key:           ArchetypeBudgetBackpacker,
		Label:         "Budget Backpacker",
		Icon:          "🎒",
		Description:   "Maximum ground covered on a shoestring, comfort optional.",
		PrimaryTraits: []string{"adventure"},
		ColorTheme:    "rust",
	},
	ArchetypeDigitalNomad: {
		Key:           ArchetypeDigitalNomad,
		Label:         "Digital Nomad",
		Icon:          "💻",
		Description:   "Slow travel with good wifi, cafés and a workable routine.",
		PrimaryTraits: []string{"culture", "relaxation"},
		ColorTheme:    "teal",
	},
}

// ArchetypeByKey returns the static definition for an archetype key,
// falling back to urban_explorer for unknown keys.
func ArchetypeByKey(key string) ArchetypeDefinition {
	if def, ok := archetypeDefinitions[key]; ok {
		return def
	}
	return archetypeDefinitions[ArchetypeUrbanExplorer]
}
