package routes

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/config"
)

// registerDocsRoutes serves a machine-readable listing of the API surface.
// Development-only exposure, gated by ENABLE_API_DOCS.
func registerDocsRoutes(app *fiber.App, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	loadedAt := time.Now().UTC().Format(time.RFC3339)

	app.Get("/docs", func(c *fiber.Ctx) error {
		routes := app.GetRoutes(true)
		listing := make([]fiber.Map, 0, len(routes))
		for _, route := range routes {
			if route.Method == fiber.MethodHead || route.Method == fiber.MethodConnect {
				continue
			}
			listing = append(listing, fiber.Map{
				"method": route.Method,
				"path":   route.Path,
			})
		}
		sort.Slice(listing, func(i, j int) bool {
			if listing[i]["path"] == listing[j]["path"] {
				return listing[i]["method"].(string) < listing[j]["method"].(string)
			}
			return listing[i]["path"].(string) < listing[j]["path"].(string)
		})

		c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
		c.Set("X-Robots-Tag", "noindex, nofollow")
		return c.JSON(fiber.Map{
			"service":   "wanderplan preference core",
			"loaded_at": loadedAt,
			"routes":    listing,
		})
	})
}
