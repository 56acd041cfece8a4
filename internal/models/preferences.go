package models

import "time"

// Budget tiers, coarsest first.
const (
	BudgetShoestring  = "shoestring"
	BudgetMidRange    = "mid_range"
	BudgetLuxury      = "luxury"
	BudgetUltraLuxury = "ultra_luxury"
)

// Pace preferences.
const (
	PaceRelaxed  = "relaxed"
	PaceModerate = "moderate"
	PacePacked   = "packed"
)

type BudgetRange struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Typical    float64 `json:"typical"`
	Currency   string  `json:"currency"`
	Confidence float64 `json:"confidence"`
}

type CuisinePreference struct {
	Cuisine    string     `json:"cuisine"`
	Confidence float64    `json:"confidence"`
	SampleSize int        `json:"sample_size"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
}

type ActivityType struct {
	Type          string  `json:"type"`
	Confidence    float64 `json:"confidence"`
	RecencyWeight float64 `json:"recency_weight"`
	Count         int     `json:"count"`
}

type AccommodationEntry struct {
	Style      string     `json:"style"`
	Confidence float64    `json:"confidence"`
	LastSeen   *time.Time `json:"last_seen,omitempty"`
	Count      int        `json:"count"`
}

type FrequentDestination struct {
	City      string     `json:"city"`
	Country   string     `json:"country,omitempty"`
	Count     int        `json:"count"`
	LastVisit *time.Time `json:"last_visit,omitempty"`
}

// UserPreferences is the per-user preference record. The repository owns the
// authoritative copy; everything else holds time-bounded or best-effort
// snapshots. Collections are never nil once normalized.
type UserPreferences struct {
	ID                   int64                 `json:"id"`
	UserID               int64                 `json:"user_id"`
	BudgetRange          *BudgetRange          `json:"budget_range,omitempty"`
	BudgetType           string                `json:"budget_type,omitempty"`
	PreferredCuisines    []CuisinePreference   `json:"preferred_cuisines"`
	ActivityTypes        []ActivityType        `json:"activity_types"`
	AccommodationStyle   []AccommodationEntry  `json:"accommodation_style"`
	TravelStyle          []string              `json:"travel_style"`
	PacePreference       string                `json:"pace_preference,omitempty"`
	FrequentDestinations []FrequentDestination `json:"frequent_destinations"`
	DietaryRestrictions  []string              `json:"dietary_restrictions"`
	AccessibilityNeeds   string                `json:"accessibility_needs,omitempty"`
	LearningEnabled      bool                  `json:"learning_enabled"`
	DataRetentionDays    int                   `json:"data_retention_days"`
	LastCalculatedAt     *time.Time            `json:"last_calculated_at,omitempty"`
	CalculationVersion   int                   `json:"calculation_version"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// DefaultPreferences materializes an empty record for users without one:
// all collections empty, confidences zero, pace unset.
func DefaultPreferences(userID int64) *UserPreferences {
	return &UserPreferences{
		UserID:               userID,
		PreferredCuisines:    []CuisinePreference{},
		ActivityTypes:        []ActivityType{},
		AccommodationStyle:   []AccommodationEntry{},
		TravelStyle:          []string{},
		FrequentDestinations: []FrequentDestination{},
		DietaryRestrictions:  []string{},
		LearningEnabled:      true,
		DataRetentionDays:    365,
	}
}

// PreferencePatch is a partial update applied onto an existing record.
// Nil fields are left untouched.
type PreferencePatch struct {
	BudgetRange          *BudgetRange           `json:"budget_range"`
	BudgetType           *string                `json:"budget_type"`
	PreferredCuisines    *[]CuisinePreference   `json:"preferred_cuisines"`
	ActivityTypes        *[]ActivityType        `json:"activity_types"`
	AccommodationStyle   *[]AccommodationEntry  `json:"accommodation_style"`
	TravelStyle          *[]string              `json:"travel_style"`
	PacePreference       *string                `json:"pace_preference"`
	FrequentDestinations *[]FrequentDestination `json:"frequent_destinations"`
	DietaryRestrictions  *[]string              `json:"dietary_restrictions"`
	AccessibilityNeeds   *string                `json:"accessibility_needs"`
	LearningEnabled      *bool                  `json:"learning_enabled"`
	DataRetentionDays    *int                   `json:"data_retention_days"`
}

// ApplyPatch returns a copy of prefs with every non-nil patch field applied.
func ApplyPatch(prefs *UserPreferences, patch PreferencePatch) *UserPreferences {
	merged := *prefs
	if patch.BudgetRange != nil {
		budget := *patch.BudgetRange
		merged.BudgetRange = &budget
	}
	if patch.BudgetType != nil {
		merged.BudgetType = *patch.BudgetType
	}
	if patch.PreferredCuisines != nil {
		merged.PreferredCuisines = *patch.PreferredCuisines
	}
	if patch.ActivityTypes != nil {
		merged.ActivityTypes = *patch.ActivityTypes
	}
	if patch.AccommodationStyle != nil {
		merged.AccommodationStyle = *patch.AccommodationStyle
	}
	if patch.TravelStyle != nil {
		merged.TravelStyle = *patch.TravelStyle
	}
	if patch.PacePreference != nil {
		merged.PacePreference = *patch.PacePreference
	}
	if patch.FrequentDestinations != nil {
		merged.FrequentDestinations = *patch.FrequentDestinations
	}
	if patch.DietaryRestrictions != nil {
		merged.DietaryRestrictions = *patch.DietaryRestrictions
	}
	if patch.AccessibilityNeeds != nil {
		merged.AccessibilityNeeds = *patch.AccessibilityNeeds
	}
	if patch.LearningEnabled != nil {
		merged.LearningEnabled = *patch.LearningEnabled
	}
	if patch.DataRetentionDays != nil {
		merged.DataRetentionDays = *patch.DataRetentionDays
	}
	return &merged
}

// PreferenceOverride holds the session-scoped values a user explicitly
// changed for the current trip. It is never persisted; only the merged
// result may reach the profile store.
type PreferenceOverride struct {
	BudgetRange         *BudgetRange          `json:"budget_range"`
	BudgetType          *string               `json:"budget_type"`
	DietaryRestrictions *[]string             `json:"dietary_restrictions"`
	AccommodationStyle  *[]AccommodationEntry `json:"accommodation_style"`
	AccessibilityNeeds  *string               `json:"accessibility_needs"`
	PacePreference      *string               `json:"pace_preference"`
	PreferredCuisines   *[]CuisinePreference  `json:"preferred_cuisines"`
}

// Provenance sources for a tracked preference value.
const (
	SourceProfile  = "profile"
	SourceOverride = "override"
	SourceDefault  = "default"
)

// Tracked field keys, one per trackable preference.
const (
	FieldBudget             = "budget"
	FieldBudgetType         = "budgetType"
	FieldDietaryRestriction = "dietaryRestrictions"
	FieldAccommodation      = "accommodationStyle"
	FieldAccessibility      = "accessibilityNeeds"
	FieldTravelPace         = "travelPace"
	FieldCuisines           = "cuisinePreferences"
)

// TrackedPreference records where an effective preference value came from.
type TrackedPreference struct {
	Value     any       `json:"value"`
	Source    string    `json:"source"`
	AppliedAt time.Time `json:"applied_at"`
}

// PreferenceTracking maps tracked field keys to their provenance.
type PreferenceTracking map[string]TrackedPreference

// TripPreferenceMetadata aggregates tracking entries by source. Derived,
// never stored; recomputed whenever merge inputs change.
type TripPreferenceMetadata struct {
	ProfilePreferences      int                `json:"profile_preferences"`
	OverriddenPreferences   int                `json:"overridden_preferences"`
	DefaultPreferences      int                `json:"default_preferences"`
	TotalPreferencesApplied int                `json:"total_preferences_applied"`
	Tracking                PreferenceTracking `json:"tracking"`
}
