package handlers

import (
	"strings"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

var allowedBudgetTypes = map[string]struct{}{
	models.BudgetShoestring:  {},
	models.BudgetMidRange:    {},
	models.BudgetLuxury:      {},
	models.BudgetUltraLuxury: {},
}

var allowedPaces = map[string]struct{}{
	models.PaceRelaxed:  {},
	models.PaceModerate: {},
	models.PacePacked:   {},
}

func validatePreferencePatch(patch models.PreferencePatch) string {
	if patch.BudgetType != nil {
		if err := validateBudgetType(*patch.BudgetType); err != "" {
			return err
		}
	}
	if patch.BudgetRange != nil {
		if err := validateBudgetRange(*patch.BudgetRange); err != "" {
			return err
		}
	}
	if patch.PacePreference != nil {
		if err := validatePace(*patch.PacePreference); err != "" {
			return err
		}
	}
	if patch.PreferredCuisines != nil {
		for _, cuisine := range *patch.PreferredCuisines {
			if strings.TrimSpace(cuisine.Cuisine) == "" {
				return "preferred_cuisines must not contain empty values"
			}
			if cuisine.Confidence < 0 || cuisine.Confidence > 1 {
				return "preferred_cuisines confidence must be between 0 and 1"
			}
		}
	}
	if patch.ActivityTypes != nil {
		for _, activity := range *patch.ActivityTypes {
			if strings.TrimSpace(activity.Type) == "" {
				return "activity_types must not contain empty values"
			}
			if activity.Confidence < 0 || activity.Confidence > 1 {
				return "activity_types confidence must be between 0 and 1"
			}
		}
	}
	if patch.AccommodationStyle != nil {
		if err := validateAccommodation(*patch.AccommodationStyle); err != "" {
			return err
		}
	}
	if patch.TravelStyle != nil {
		for _, style := range *patch.TravelStyle {
			if strings.TrimSpace(style) == "" {
				return "travel_style must not contain empty values"
			}
		}
	}
	if patch.DietaryRestrictions != nil {
		for _, restriction := range *patch.DietaryRestrictions {
			if strings.TrimSpace(restriction) == "" {
				return "dietary_restrictions must not contain empty values"
			}
		}
	}
	if patch.DataRetentionDays != nil && *patch.DataRetentionDays < 0 {
		return "data_retention_days must be 0 or greater"
	}
	return ""
}

func validatePreferenceOverride(overrides models.PreferenceOverride) string {
	if overrides.BudgetType != nil {
		if err := validateBudgetType(*overrides.BudgetType); err != "" {
			return err
		}
	}
	if overrides.BudgetRange != nil {
		if err := validateBudgetRange(*overrides.BudgetRange); err != "" {
			return err
		}
	}
	if overrides.PacePreference != nil {
		if err := validatePace(*overrides.PacePreference); err != "" {
			return err
		}
	}
	if overrides.AccommodationStyle != nil {
		if err := validateAccommodation(*overrides.AccommodationStyle); err != "" {
			return err
		}
	}
	if overrides.DietaryRestrictions != nil {
		for _, restriction := range *overrides.DietaryRestrictions {
			if strings.TrimSpace(restriction) == "" {
				return "dietary_restrictions must not contain empty values"
			}
		}
	}
	if overrides.PreferredCuisines != nil {
		for _, cuisine := range *overrides.PreferredCuisines {
			if strings.TrimSpace(cuisine.Cuisine) == "" {
				return "preferred_cuisines must not contain empty values"
			}
		}
	}
	return ""
}

func validateBudgetType(budgetType string) string {
	if _, ok := allowedBudgetTypes[strings.TrimSpace(budgetType)]; !ok {
		return "budget_type must be one of: shoestring, mid_range, luxury, ultra_luxury"
	}
	return ""
}

func validateBudgetRange(budget models.BudgetRange) string {
	if budget.Min < 0 || budget.Max < 0 {
		return "budget_range values must be 0 or greater"
	}
	if budget.Max > 0 && budget.Min > budget.Max {
		return "budget_range min must not exceed max"
	}
	if budget.Confidence < 0 || budget.Confidence > 1 {
		return "budget_range confidence must be between 0 and 1"
	}
	return ""
}

func validatePace(pace string) string {
	if _, ok := allowedPaces[strings.TrimSpace(pace)]; !ok {
		return "pace_preference must be one of: relaxed, moderate, packed"
	}
	return ""
}

func validateAccommodation(entries []models.AccommodationEntry) string {
	for _, entry := range entries {
		if strings.TrimSpace(entry.Style) == "" {
			return "accommodation_style must not contain empty values"
		}
		if entry.Confidence < 0 || entry.Confidence > 1 {
			return "accommodation_style confidence must be between 0 and 1"
		}
	}
	return ""
}
