package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/services"
)

type DNAHandler struct {
	preferences preferenceAccessor
}

func NewDNAHandler(preferences preferenceAccessor) *DNAHandler {
	return &DNAHandler{preferences: preferences}
}

// GetTravelDNA scores the user's stored preferences across the six DNA
// dimensions and classifies their archetype.
func (h *DNAHandler) GetTravelDNA(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	prefs, err := h.preferences.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
	}

	return c.JSON(fiber.Map{"dna": services.BuildDNASummary(prefs)})
}
