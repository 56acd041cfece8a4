package models

import "testing"

func TestDecodeSnapshotAcceptsBareStringAccommodation(t *testing.T) {
	raw := []byte(`{"user_id": 7, "accommodation_style": ["Hotel", "airbnb", "hotel"]}`)

	prefs, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if got := len(prefs.AccommodationStyle); got != 3 {
		t.Fatalf("expected 3 accommodation entries, got %d", got)
	}
	if prefs.AccommodationStyle[0].Style != "hotel" {
		t.Fatalf("expected normalized style hotel, got %q", prefs.AccommodationStyle[0].Style)
	}
	if prefs.AccommodationStyle[1].Style != "airbnb" {
		t.Fatalf("expected style airbnb, got %q", prefs.AccommodationStyle[1].Style)
	}
}

func TestDecodeSnapshotAcceptsStructuredAccommodation(t *testing.T) {
	raw := []byte(`{"user_id": 7, "accommodation_style": [{"style": "resort", "confidence": 2.5, "count": 4}]}`)

	prefs, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if got := len(prefs.AccommodationStyle); got != 1 {
		t.Fatalf("expected 1 accommodation entry, got %d", got)
	}
	entry := prefs.AccommodationStyle[0]
	if entry.Style != "resort" || entry.Count != 4 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %v", entry.Confidence)
	}
}

func TestDecodeSnapshotHandlesLegacyFieldNames(t *testing.T) {
	raw := []byte(`{
		"user_id": 7,
		"pace": "relaxed",
		"accommodation_type": ["hostel"],
		"cuisines": [{"cuisine": "thai", "confidence": 0.8}]
	}`)

	prefs, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if prefs.PacePreference != PaceRelaxed {
		t.Fatalf("expected legacy pace mapped, got %q", prefs.PacePreference)
	}
	if len(prefs.AccommodationStyle) != 1 || prefs.AccommodationStyle[0].Style != "hostel" {
		t.Fatalf("expected legacy accommodation_type mapped, got %+v", prefs.AccommodationStyle)
	}
	if len(prefs.PreferredCuisines) != 1 || prefs.PreferredCuisines[0].Cuisine != "thai" {
		t.Fatalf("expected legacy cuisines mapped, got %+v", prefs.PreferredCuisines)
	}
}

func TestNormalizeReplacesNilCollections(t *testing.T) {
	prefs := Normalize(&UserPreferences{UserID: 1})

	if prefs.PreferredCuisines == nil || prefs.ActivityTypes == nil ||
		prefs.AccommodationStyle == nil || prefs.TravelStyle == nil ||
		prefs.FrequentDestinations == nil || prefs.DietaryRestrictions == nil {
		t.Fatal("expected all collections to be non-nil after normalization")
	}
}

func TestNormalizeClampsConfidences(t *testing.T) {
	prefs := Normalize(&UserPreferences{
		BudgetRange:       &BudgetRange{Confidence: 3},
		PreferredCuisines: []CuisinePreference{{Cuisine: "thai", Confidence: -0.5}},
	})

	if prefs.BudgetRange.Confidence != 1 {
		t.Fatalf("expected budget confidence clamped to 1, got %v", prefs.BudgetRange.Confidence)
	}
	if prefs.PreferredCuisines[0].Confidence != 0 {
		t.Fatalf("expected cuisine confidence clamped to 0, got %v", prefs.PreferredCuisines[0].Confidence)
	}
}

func TestAccommodationWireRoundTrip(t *testing.T) {
	entries := AccommodationFromWire([]string{"Hotel", "resort", "hotel", " "})
	if got := len(entries); got != 2 {
		t.Fatalf("expected 2 deduplicated entries, got %d", got)
	}

	wire := AccommodationToWire(entries)
	if len(wire) != 2 || wire[0] != "hotel" || wire[1] != "resort" {
		t.Fatalf("unexpected wire form %v", wire)
	}
}

func TestApplyPatchLeavesNilFieldsUntouched(t *testing.T) {
	base := DefaultPreferences(9)
	base.BudgetType = BudgetLuxury
	base.PacePreference = PaceRelaxed

	pace := PacePacked
	merged := ApplyPatch(base, PreferencePatch{PacePreference: &pace})

	if merged.PacePreference != PacePacked {
		t.Fatalf("expected patched pace, got %q", merged.PacePreference)
	}
	if merged.BudgetType != BudgetLuxury {
		t.Fatalf("expected budget type untouched, got %q", merged.BudgetType)
	}
	if base.PacePreference != PaceRelaxed {
		t.Fatal("expected ApplyPatch to copy, not mutate its input")
	}
}
