package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/services"
)

const defaultRecommendationLimit = 10

type DestinationHandler struct {
	preferences     preferenceAccessor
	recommendations *services.RecommendationService
	catalog         services.DestinationLister
}

func NewDestinationHandler(
	preferences preferenceAccessor,
	recommendations *services.RecommendationService,
	catalog services.DestinationLister,
) *DestinationHandler {
	return &DestinationHandler{
		preferences:     preferences,
		recommendations: recommendations,
		catalog:         catalog,
	}
}

// GetRecommended returns the destination catalog ranked against the user's
// Travel DNA.
func (h *DestinationHandler) GetRecommended(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := defaultRecommendationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 50 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 50"})
		}
		limit = parsed
	}

	prefs, err := h.preferences.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load preferences"})
	}

	destinations, err := h.recommendations.GetRecommendedDestinations(c.Context(), prefs, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to rank destinations"})
	}

	return c.JSON(fiber.Map{
		"destinations": destinations,
		"count":        len(destinations),
	})
}

// ListCatalog returns the unranked destination catalog, paginated.
func (h *DestinationHandler) ListCatalog(c *fiber.Ctx) error {
	if _, err := requireUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	destinations, err := h.catalog.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list destinations"})
	}

	total := len(destinations)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"destinations": destinations[start:end],
		"pagination":   buildPaginationMeta(page, limit, total),
	})
}
