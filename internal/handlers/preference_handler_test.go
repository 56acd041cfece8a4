package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
)

type stubPreferenceAccessor struct {
	prefs     *models.UserPreferences
	lastPatch models.PreferencePatch
	loadErr   error
	syncErr   error
	erased    bool
}

func (s *stubPreferenceAccessor) Load(_ context.Context, userID int64) (*models.UserPreferences, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.prefs == nil {
		return models.DefaultPreferences(userID), nil
	}
	return s.prefs, nil
}

func (s *stubPreferenceAccessor) Save(_ context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error) {
	s.lastPatch = patch
	base := s.prefs
	if base == nil {
		base = models.DefaultPreferences(userID)
	}
	s.prefs = models.ApplyPatch(base, patch)
	return s.prefs, nil
}

func (s *stubPreferenceAccessor) Erase(_ context.Context, _ int64) error {
	s.erased = true
	s.prefs = nil
	return nil
}

func (s *stubPreferenceAccessor) SyncError(_ int64) error {
	return s.syncErr
}

func newAuthedApp(userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("role", "user")
		return c.Next()
	})
	return app
}

func TestGetPreferencesReturnsRecordAndSyncState(t *testing.T) {
	accessor := &stubPreferenceAccessor{syncErr: errors.New("remote store down")}
	handler := NewPreferenceHandler(accessor)

	app := newAuthedApp("42")
	app.Get("/api/v1/users/preferences", handler.GetPreferences)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/preferences", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Preferences models.UserPreferences `json:"preferences"`
		Sync        struct {
			Synced bool   `json:"synced"`
			Error  string `json:"error"`
		} `json:"sync"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Preferences.UserID != 42 {
		t.Fatalf("expected the caller's record, got user %d", body.Preferences.UserID)
	}
	if body.Sync.Synced || !strings.Contains(body.Sync.Error, "remote store down") {
		t.Fatalf("expected degraded sync state, got %+v", body.Sync)
	}
}

func TestUpdatePreferencesAppliesPatch(t *testing.T) {
	accessor := &stubPreferenceAccessor{}
	handler := NewPreferenceHandler(accessor)

	app := newAuthedApp("42")
	app.Put("/api/v1/users/preferences", handler.UpdatePreferences)

	payload := `{"budget_type":"luxury","pace_preference":"relaxed"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/preferences", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if accessor.lastPatch.BudgetType == nil || *accessor.lastPatch.BudgetType != models.BudgetLuxury {
		t.Fatalf("expected budget patch forwarded, got %+v", accessor.lastPatch)
	}
	if accessor.lastPatch.PacePreference == nil || *accessor.lastPatch.PacePreference != models.PaceRelaxed {
		t.Fatalf("expected pace patch forwarded, got %+v", accessor.lastPatch)
	}
}

func TestUpdatePreferencesRejectsUnknownBudgetType(t *testing.T) {
	handler := NewPreferenceHandler(&stubPreferenceAccessor{})

	app := newAuthedApp("42")
	app.Put("/api/v1/users/preferences", handler.UpdatePreferences)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/preferences", bytes.NewBufferString(`{"budget_type":"bottomless"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeletePreferencesErases(t *testing.T) {
	accessor := &stubPreferenceAccessor{}
	handler := NewPreferenceHandler(accessor)

	app := newAuthedApp("42")
	app.Delete("/api/v1/users/preferences", handler.DeletePreferences)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/preferences", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !accessor.erased {
		t.Fatal("expected the accessor erase to run")
	}
}

func TestPreviewMergeTracksOverrides(t *testing.T) {
	profile := models.DefaultPreferences(42)
	profile.BudgetType = models.BudgetMidRange
	handler := NewPreferenceHandler(&stubPreferenceAccessor{prefs: profile})

	app := newAuthedApp("42")
	app.Post("/api/v1/trips/preferences/preview", handler.PreviewMerge)

	payload := `{"overrides":{"budget_type":"luxury"},"apply_defaults":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/preferences/preview", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Effective models.UserPreferences    `json:"effective"`
		Tracking  models.PreferenceTracking `json:"tracking"`
		Metadata  struct {
			OverriddenPreferences int `json:"overridden_preferences"`
			DefaultPreferences    int `json:"default_preferences"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Effective.BudgetType != models.BudgetLuxury {
		t.Fatalf("expected the override to win, got %q", body.Effective.BudgetType)
	}
	if got := body.Tracking[models.FieldBudgetType].Source; got != models.SourceOverride {
		t.Fatalf("expected override provenance, got %q", got)
	}
	if body.Metadata.OverriddenPreferences != 1 {
		t.Fatalf("expected one overridden field, got %d", body.Metadata.OverriddenPreferences)
	}
	// apply_defaults fills pace and accommodation, still empty after merge.
	if body.Metadata.DefaultPreferences != 2 {
		t.Fatalf("expected two defaulted fields, got %d", body.Metadata.DefaultPreferences)
	}
}

func TestPreferenceEndpointsRequireIdentity(t *testing.T) {
	handler := NewPreferenceHandler(&stubPreferenceAccessor{})

	app := fiber.New()
	app.Get("/api/v1/users/preferences", handler.GetPreferences)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/preferences", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without locals, got %d", resp.StatusCode)
	}
}
