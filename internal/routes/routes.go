package routes

import (
	"fmt"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danaingraham/wanderplan-sub002/internal/cache"
	"github.com/danaingraham/wanderplan-sub002/internal/config"
	"github.com/danaingraham/wanderplan-sub002/internal/handlers"
	"github.com/danaingraham/wanderplan-sub002/internal/localstore"
	"github.com/danaingraham/wanderplan-sub002/internal/middleware"
	"github.com/danaingraham/wanderplan-sub002/internal/repository"
	"github.com/danaingraham/wanderplan-sub002/internal/services"
	scanws "github.com/danaingraham/wanderplan-sub002/internal/websocket"
)

// Pause between a finished inbox scan and the advance to the results step,
// long enough for the client to render the completed progress bar.
const scanAdvanceDelay = 1500 * time.Millisecond

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	local, err := localstore.Open(localstore.Config{Path: cfg.LocalDBPath})
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	prefCache, err := cache.NewPreferenceCache(0, 0)
	if err != nil {
		return fmt.Errorf("build preference cache: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)

	preferenceStore := services.NewPreferenceStore(preferenceRepo, prefCache)
	preferenceService := services.NewPreferenceService(preferenceStore, local)
	recommendationService := services.NewRecommendationService(destinationRepo)

	scanHub := scanws.NewHub()
	go scanHub.Run()
	onboardingService := services.NewOnboardingService(
		local,
		scanHub,
		&services.SimulatedScanDriver{},
		scanAdvanceDelay,
	)

	authHandler := handlers.NewAuthHandler(db, userRepo, onboardingService, cfg.JWTSecret)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	dnaHandler := handlers.NewDNAHandler(preferenceService)
	destinationHandler := handlers.NewDestinationHandler(preferenceService, recommendationService, destinationRepo)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, scanHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Get("/preferences", preferenceHandler.GetPreferences)
	users.Put("/preferences", preferenceHandler.UpdatePreferences)
	users.Delete("/preferences", preferenceHandler.DeletePreferences)
	users.Get("/preferences/sync", preferenceHandler.GetSyncStatus)
	users.Get("/dna", dnaHandler.GetTravelDNA)

	trips := authProtected.Group("/trips")
	trips.Post("/preferences/preview", preferenceHandler.PreviewMerge)

	destinations := authProtected.Group("/destinations")
	destinations.Get("", destinationHandler.ListCatalog)
	destinations.Get("/recommended", destinationHandler.GetRecommended)

	onboarding := authProtected.Group("/onboarding")
	onboarding.Get("", onboardingHandler.GetState)
	onboarding.Post("/path", onboardingHandler.SelectPath)
	onboarding.Post("/next", onboardingHandler.NextStep)
	onboarding.Post("/previous", onboardingHandler.PreviousStep)
	onboarding.Put("/preferences", onboardingHandler.UpdateTemporaryPreferences)
	onboarding.Post("/scan/start", onboardingHandler.StartScan)
	onboarding.Post("/scan/stop", onboardingHandler.StopScan)
	onboarding.Post("/complete", onboardingHandler.Complete)
	onboarding.Post("/skip", onboardingHandler.Skip)
	onboarding.Post("/reset", onboardingHandler.Reset)
	onboarding.Post("/start-with-gmail", onboardingHandler.StartWithGmail)

	api.Use("/v1/ws/onboarding", onboardingHandler.WebSocketAuth)
	api.Get("/v1/ws/onboarding", websocket.New(onboardingHandler.HandleWebSocket))

	registerDocsRoutes(app, cfg)

	return nil
}
