package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
	"github.com/danaingraham/wanderplan-sub002/internal/services"
)

type preferenceAccessor interface {
	Load(ctx context.Context, userID int64) (*models.UserPreferences, error)
	Save(ctx context.Context, userID int64, patch models.PreferencePatch) (*models.UserPreferences, error)
	Erase(ctx context.Context, userID int64) error
	SyncError(userID int64) error
}

type PreferenceHandler struct {
	preferences preferenceAccessor
}

func NewPreferenceHandler(preferences preferenceAccessor) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

func (h *PreferenceHandler) GetPreferences(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	prefs, err := h.preferences.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
	}

	return c.JSON(fiber.Map{
		"preferences": prefs,
		"sync":        syncStatus(h.preferences.SyncError(userID)),
	})
}

func (h *PreferenceHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var patch models.PreferencePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validatePreferencePatch(patch); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	prefs, err := h.preferences.Save(c.Context(), userID, patch)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save preferences"})
	}

	return c.JSON(fiber.Map{
		"preferences": prefs,
		"sync":        syncStatus(h.preferences.SyncError(userID)),
	})
}

func (h *PreferenceHandler) DeletePreferences(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.preferences.Erase(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete preferences"})
	}

	return c.JSON(fiber.Map{"deleted": true})
}

func (h *PreferenceHandler) GetSyncStatus(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(syncStatus(h.preferences.SyncError(userID)))
}

type previewRequest struct {
	Overrides     models.PreferenceOverride `json:"overrides"`
	ApplyDefaults bool                      `json:"apply_defaults"`
}

// PreviewMerge runs the merge engine over the stored profile and the
// request's session overrides, returning the effective set, provenance and
// aggregate metadata without persisting anything.
func (h *PreferenceHandler) PreviewMerge(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req previewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validatePreferenceOverride(req.Overrides); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.preferences.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
	}

	enabled := profile != nil && profile.LearningEnabled
	result := services.MergePreferences(profile, req.Overrides, enabled)
	if req.ApplyDefaults {
		result = services.ApplyRequestDefaults(result)
	}

	return c.JSON(fiber.Map{
		"effective": result.Effective,
		"tracking":  result.Tracking,
		"metadata":  services.BuildMetadata(result.Tracking),
	})
}

func syncStatus(err error) fiber.Map {
	if err != nil {
		return fiber.Map{"synced": false, "error": err.Error()}
	}
	return fiber.Map{"synced": true}
}
