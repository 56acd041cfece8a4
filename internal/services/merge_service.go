package services

import (
	"time"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

// MergeResult pairs the effective preference set with the provenance of
// every tracked field.
type MergeResult struct {
	Effective *models.UserPreferences   `json:"effective"`
	Tracking  models.PreferenceTracking `json:"tracking"`
}

// MergePreferences overlays session overrides onto the profile preference
// set, field by field, and records where each non-empty effective value came
// from. With personalization disabled or no profile, the effective set is
// nil and the caller falls back to request-time defaults with no tracked
// provenance.
//
// Empty effective fields are omitted from tracking entirely; "default"
// provenance is stamped later, by ApplyRequestDefaults, when a generation
// request is assembled and a field is still empty. The two stages are
// deliberately independent.
func MergePreferences(profile *models.UserPreferences, overrides models.PreferenceOverride, enabled bool) MergeResult {
	if !enabled || profile == nil {
		return MergeResult{Tracking: models.PreferenceTracking{}}
	}

	effective := *profile
	tracking := models.PreferenceTracking{}
	now := time.Now().UTC()

	track := func(field string, overridden bool, value any, empty bool) {
		if empty {
			return
		}
		source := models.SourceProfile
		if overridden {
			source = models.SourceOverride
		}
		tracking[field] = models.TrackedPreference{Value: value, Source: source, AppliedAt: now}
	}

	if overrides.BudgetRange != nil {
		budget := *overrides.BudgetRange
		effective.BudgetRange = &budget
	}
	track(models.FieldBudget, overrides.BudgetRange != nil, effective.BudgetRange, effective.BudgetRange == nil)

	if overrides.BudgetType != nil {
		effective.BudgetType = *overrides.BudgetType
	}
	track(models.FieldBudgetType, overrides.BudgetType != nil, effective.BudgetType, effective.BudgetType == "")

	if overrides.DietaryRestrictions != nil {
		effective.DietaryRestrictions = *overrides.DietaryRestrictions
	}
	track(models.FieldDietaryRestriction, overrides.DietaryRestrictions != nil, effective.DietaryRestrictions, len(effective.DietaryRestrictions) == 0)

	if overrides.AccommodationStyle != nil {
		effective.AccommodationStyle = *overrides.AccommodationStyle
	}
	track(models.FieldAccommodation, overrides.AccommodationStyle != nil, effective.AccommodationStyle, len(effective.AccommodationStyle) == 0)

	if overrides.AccessibilityNeeds != nil {
		effective.AccessibilityNeeds = *overrides.AccessibilityNeeds
	}
	track(models.FieldAccessibility, overrides.AccessibilityNeeds != nil, effective.AccessibilityNeeds, effective.AccessibilityNeeds == "")

	if overrides.PacePreference != nil {
		effective.PacePreference = *overrides.PacePreference
	}
	track(models.FieldTravelPace, overrides.PacePreference != nil, effective.PacePreference, effective.PacePreference == "")

	if overrides.PreferredCuisines != nil {
		effective.PreferredCuisines = *overrides.PreferredCuisines
	}
	track(models.FieldCuisines, overrides.PreferredCuisines != nil, effective.PreferredCuisines, len(effective.PreferredCuisines) == 0)

	return MergeResult{Effective: &effective, Tracking: tracking}
}

// Request-time defaults applied to fields still empty after the merge.
const (
	defaultRequestBudgetType = models.BudgetMidRange
	defaultRequestPace       = models.PaceModerate
)

// ApplyRequestDefaults fills fields that are still empty when a trip
// generation request is assembled, stamping them with default provenance.
// This is the second stage of the two-stage design: the merge engine never
// emits a default source itself.
func ApplyRequestDefaults(result MergeResult) MergeResult {
	if result.Effective == nil {
		return result
	}
	effective := *result.Effective
	tracking := models.PreferenceTracking{}
	for field, tracked := range result.Tracking {
		tracking[field] = tracked
	}
	now := time.Now().UTC()

	if effective.BudgetType == "" {
		effective.BudgetType = defaultRequestBudgetType
		tracking[models.FieldBudgetType] = models.TrackedPreference{
			Value:     effective.BudgetType,
			Source:    models.SourceDefault,
			AppliedAt: now,
		}
	}
	if effective.PacePreference == "" {
		effective.PacePreference = defaultRequestPace
		tracking[models.FieldTravelPace] = models.TrackedPreference{
			Value:     effective.PacePreference,
			Source:    models.SourceDefault,
			AppliedAt: now,
		}
	}
	if len(effective.AccommodationStyle) == 0 {
		effective.AccommodationStyle = []models.AccommodationEntry{{Style: "hotel", Confidence: 0, Count: 0}}
		tracking[models.FieldAccommodation] = models.TrackedPreference{
			Value:     effective.AccommodationStyle,
			Source:    models.SourceDefault,
			AppliedAt: now,
		}
	}

	return MergeResult{Effective: &effective, Tracking: tracking}
}

// BuildMetadata derives the aggregate counts from a tracking map.
func BuildMetadata(tracking models.PreferenceTracking) models.TripPreferenceMetadata {
	meta := models.TripPreferenceMetadata{Tracking: tracking}
	for _, tracked := range tracking {
		switch tracked.Source {
		case models.SourceProfile:
			meta.ProfilePreferences++
		case models.SourceOverride:
			meta.OverriddenPreferences++
		case models.SourceDefault:
			meta.DefaultPreferences++
		}
	}
	meta.TotalPreferencesApplied = meta.ProfilePreferences + meta.OverriddenPreferences + meta.DefaultPreferences
	return meta
}
