package models

import (
	"encoding/json"
	"strings"
	"time"
)

// The storage boundaries accept heterogeneous shapes: accommodation entries
// stored as bare strings or structured objects, and snapshots written under
// legacy field names. Everything is converted to the canonical structured
// form here, before it reaches the merge or scoring code.

// AccommodationFromWire converts the remote store's plain-string
// accommodation_type column into structured entries.
func AccommodationFromWire(styles []string) []AccommodationEntry {
	entries := make([]AccommodationEntry, 0, len(styles))
	seen := make(map[string]struct{}, len(styles))
	for _, style := range styles {
		key := normalizeTag(style)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, AccommodationEntry{Style: key, Confidence: 1, Count: 1})
	}
	return entries
}

// AccommodationToWire flattens structured entries back to the plain-string
// wire format, dropping duplicates.
func AccommodationToWire(entries []AccommodationEntry) []string {
	styles := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		key := normalizeTag(entry.Style)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		styles = append(styles, key)
	}
	return styles
}

// Normalize clamps confidences into [0,1] and replaces nil collections with
// empty ones so heterogeneity never leaks past the adapter layer.
func Normalize(prefs *UserPreferences) *UserPreferences {
	if prefs == nil {
		return nil
	}
	if prefs.BudgetRange != nil {
		prefs.BudgetRange.Confidence = clamp01(prefs.BudgetRange.Confidence)
	}
	if prefs.PreferredCuisines == nil {
		prefs.PreferredCuisines = []CuisinePreference{}
	}
	for i := range prefs.PreferredCuisines {
		prefs.PreferredCuisines[i].Confidence = clamp01(prefs.PreferredCuisines[i].Confidence)
	}
	if prefs.ActivityTypes == nil {
		prefs.ActivityTypes = []ActivityType{}
	}
	for i := range prefs.ActivityTypes {
		prefs.ActivityTypes[i].Confidence = clamp01(prefs.ActivityTypes[i].Confidence)
	}
	if prefs.AccommodationStyle == nil {
		prefs.AccommodationStyle = []AccommodationEntry{}
	}
	for i := range prefs.AccommodationStyle {
		prefs.AccommodationStyle[i].Style = normalizeTag(prefs.AccommodationStyle[i].Style)
		prefs.AccommodationStyle[i].Confidence = clamp01(prefs.AccommodationStyle[i].Confidence)
	}
	if prefs.TravelStyle == nil {
		prefs.TravelStyle = []string{}
	}
	for i := range prefs.TravelStyle {
		prefs.TravelStyle[i] = normalizeTag(prefs.TravelStyle[i])
	}
	if prefs.FrequentDestinations == nil {
		prefs.FrequentDestinations = []FrequentDestination{}
	}
	if prefs.DietaryRestrictions == nil {
		prefs.DietaryRestrictions = []string{}
	}
	return prefs
}

// looseAccommodation accepts both "hotel" and {"style":"hotel",...}.
type looseAccommodation struct {
	entry AccommodationEntry
}

func (l *looseAccommodation) UnmarshalJSON(data []byte) error {
	var style string
	if err := json.Unmarshal(data, &style); err == nil {
		l.entry = AccommodationEntry{Style: style, Confidence: 1, Count: 1}
		return nil
	}
	return json.Unmarshal(data, &l.entry)
}

// looseSnapshot covers every historical shape a local snapshot was written
// under, including legacy field names from before the preference schema was
// settled.
type looseSnapshot struct {
	UserPreferences
	LooseAccommodation  []looseAccommodation  `json:"accommodation_style"`
	LegacyAccommodation []looseAccommodation  `json:"accommodation_type"`
	LegacyPace          string                `json:"pace"`
	LegacyPaceType      string                `json:"pace_type"`
	LegacyCuisines      []CuisinePreference   `json:"cuisines"`
	LegacyDestinations  []FrequentDestination `json:"destinations"`
}

// DecodeSnapshot parses a locally persisted snapshot, tolerating legacy
// field names and bare-string accommodation entries.
func DecodeSnapshot(raw []byte) (*UserPreferences, error) {
	var loose looseSnapshot
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, err
	}
	prefs := loose.UserPreferences

	accommodation := loose.LooseAccommodation
	if len(accommodation) == 0 {
		accommodation = loose.LegacyAccommodation
	}
	prefs.AccommodationStyle = make([]AccommodationEntry, 0, len(accommodation))
	for _, entry := range accommodation {
		prefs.AccommodationStyle = append(prefs.AccommodationStyle, entry.entry)
	}

	if prefs.PacePreference == "" {
		if loose.LegacyPace != "" {
			prefs.PacePreference = loose.LegacyPace
		} else if loose.LegacyPaceType != "" {
			prefs.PacePreference = loose.LegacyPaceType
		}
	}
	if len(prefs.PreferredCuisines) == 0 && len(loose.LegacyCuisines) > 0 {
		prefs.PreferredCuisines = loose.LegacyCuisines
	}
	if len(prefs.FrequentDestinations) == 0 && len(loose.LegacyDestinations) > 0 {
		prefs.FrequentDestinations = loose.LegacyDestinations
	}

	return Normalize(&prefs), nil
}

// EncodeSnapshot writes the canonical snapshot shape.
func EncodeSnapshot(prefs *UserPreferences) ([]byte, error) {
	return json.Marshal(prefs)
}

func normalizeTag(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// TouchCalculated marks the record as having been through a full preference
// calculation pass.
func TouchCalculated(prefs *UserPreferences, version int) {
	now := time.Now().UTC()
	prefs.LastCalculatedAt = &now
	prefs.CalculationVersion = version
}
