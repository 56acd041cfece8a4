package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

// PreferenceRepository is the adapter over the authoritative preference
// store. It normalizes every record at the boundary and owns the transform
// between the structured accommodation_style and the store's plain-string
// accommodation_type column.
type PreferenceRepository struct {
	db DBTX
}

func NewPreferenceRepository(db DBTX) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

const preferenceColumns = `
	id, user_id, budget_range, budget_type, preferred_cuisines, activity_types,
	accommodation_type, travel_style, pace_preference, frequent_destinations,
	dietary_restrictions, accessibility_needs, learning_enabled,
	data_retention_days, last_calculated_at, calculation_version,
	created_at, updated_at
`

// Get fetches the record for a user. An absent record is not an error: a
// materialized default record is returned instead.
func (r *PreferenceRepository) Get(ctx context.Context, userID int64) (*models.UserPreferences, error) {
	query := `SELECT ` + preferenceColumns + ` FROM user_preferences WHERE user_id = $1`
	prefs, err := r.scanRow(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// Update merges the patch onto the existing record and persists it. If no
// record exists yet, it behaves as Create.
func (r *PreferenceRepository) Update(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error) {
	existing, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing.ID == 0 {
		return r.Create(ctx, userID, patch)
	}

	merged := models.Normalize(models.ApplyPatch(existing, patch))
	query := `
		UPDATE user_preferences
		SET budget_range = $1,
			budget_type = $2,
			preferred_cuisines = $3,
			activity_types = $4,
			accommodation_type = $5,
			travel_style = $6,
			pace_preference = $7,
			frequent_destinations = $8,
			dietary_restrictions = $9,
			accessibility_needs = $10,
			learning_enabled = $11,
			data_retention_days = $12,
			last_calculated_at = $13,
			calculation_version = $14,
			updated_at = NOW()
		WHERE user_id = $15
		RETURNING ` + preferenceColumns
	return r.scanRow(r.db.QueryRow(ctx, query,
		merged.BudgetRange,
		nullableString(merged.BudgetType),
		merged.PreferredCuisines,
		merged.ActivityTypes,
		models.AccommodationToWire(merged.AccommodationStyle),
		merged.TravelStyle,
		nullableString(merged.PacePreference),
		merged.FrequentDestinations,
		merged.DietaryRestrictions,
		nullableString(merged.AccessibilityNeeds),
		merged.LearningEnabled,
		merged.DataRetentionDays,
		merged.LastCalculatedAt,
		merged.CalculationVersion,
		userID,
	))
}

// Create inserts a new record seeded from defaults overlaid with the patch.
func (r *PreferenceRepository) Create(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error) {
	seeded := models.Normalize(models.ApplyPatch(models.DefaultPreferences(userID), patch))
	query := `
		INSERT INTO user_preferences (
			user_id, budget_range, budget_type, preferred_cuisines, activity_types,
			accommodation_type, travel_style, pace_preference, frequent_destinations,
			dietary_restrictions, accessibility_needs, learning_enabled,
			data_retention_days, last_calculated_at, calculation_version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + preferenceColumns
	return r.scanRow(r.db.QueryRow(ctx, query,
		userID,
		seeded.BudgetRange,
		nullableString(seeded.BudgetType),
		seeded.PreferredCuisines,
		seeded.ActivityTypes,
		models.AccommodationToWire(seeded.AccommodationStyle),
		seeded.TravelStyle,
		nullableString(seeded.PacePreference),
		seeded.FrequentDestinations,
		seeded.DietaryRestrictions,
		nullableString(seeded.AccessibilityNeeds),
		seeded.LearningEnabled,
		seeded.DataRetentionDays,
		seeded.LastCalculatedAt,
		seeded.CalculationVersion,
	))
}

// Delete removes the record. Deleting an absent record is a success,
// supporting right-to-erasure idempotently.
func (r *PreferenceRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, userID)
	return err
}

func (r *PreferenceRepository) scanRow(row pgx.Row) (*models.UserPreferences, error) {
	var (
		prefs              models.UserPreferences
		budgetType         *string
		accommodationWire  []string
		pacePreference     *string
		accessibilityNeeds *string
	)
	err := row.Scan(
		&prefs.ID,
		&prefs.UserID,
		&prefs.BudgetRange,
		&budgetType,
		&prefs.PreferredCuisines,
		&prefs.ActivityTypes,
		&accommodationWire,
		&prefs.TravelStyle,
		&pacePreference,
		&prefs.FrequentDestinations,
		&prefs.DietaryRestrictions,
		&accessibilityNeeds,
		&prefs.LearningEnabled,
		&prefs.DataRetentionDays,
		&prefs.LastCalculatedAt,
		&prefs.CalculationVersion,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if budgetType != nil {
		prefs.BudgetType = *budgetType
	}
	if pacePreference != nil {
		prefs.PacePreference = *pacePreference
	}
	if accessibilityNeeds != nil {
		prefs.AccessibilityNeeds = *accessibilityNeeds
	}
	prefs.AccommodationStyle = models.AccommodationFromWire(accommodationWire)
	return models.Normalize(&prefs), nil
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
