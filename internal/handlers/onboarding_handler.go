package handlers

import (
	"errors"
	"strconv"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/danaingraham/wanderplan-sub002/internal/models"
	"github.com/danaingraham/wanderplan-sub002/internal/services"
	scanws "github.com/danaingraham/wanderplan-sub002/internal/websocket"
	"github.com/danaingraham/wanderplan-sub002/pkg/utils"
)

type OnboardingHandler struct {
	service   *services.OnboardingService
	hub       *scanws.Hub
	jwtSecret string
}

func NewOnboardingHandler(service *services.OnboardingService, hub *scanws.Hub, jwtSecret string) *OnboardingHandler {
	return &OnboardingHandler{
		service:   service,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

func (h *OnboardingHandler) GetState(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	return c.JSON(fiber.Map{
		"state":           h.service.State(userID),
		"show_onboarding": h.service.ShouldShowOnboarding(userID),
	})
}

type selectPathRequest struct {
	Path string `json:"path"`
}

func (h *OnboardingHandler) SelectPath(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req selectPathRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	state, err := h.service.SelectPath(userID, strings.TrimSpace(req.Path))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path must be one of: gmail, manual, skip"})
	}

	return c.JSON(fiber.Map{"state": state})
}

func (h *OnboardingHandler) NextStep(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"state": h.service.NextStep(userID)})
}

func (h *OnboardingHandler) PreviousStep(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"state": h.service.PreviousStep(userID)})
}

func (h *OnboardingHandler) UpdateTemporaryPreferences(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var draft models.PreferenceOverride
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validatePreferenceOverride(draft); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	return c.JSON(fiber.Map{"state": h.service.UpdateTemporaryPreferences(userID, draft)})
}

func (h *OnboardingHandler) StartScan(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	state, err := h.service.StartScan(userID)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Scanning requires the gmail path"})
	}

	return c.JSON(fiber.Map{"state": state})
}

func (h *OnboardingHandler) StopScan(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	h.service.StopScan(userID)
	return c.JSON(fiber.Map{"state": h.service.State(userID)})
}

func (h *OnboardingHandler) Complete(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"state": h.service.CompleteOnboarding(userID)})
}

func (h *OnboardingHandler) Skip(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"state": h.service.SkipOnboarding(userID)})
}

func (h *OnboardingHandler) Reset(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"state": h.service.ResetOnboarding(userID)})
}

func (h *OnboardingHandler) StartWithGmail(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"state": h.service.StartWithGmail(userID)})
}

// WebSocketAuth authenticates the scan-progress socket. The browser's
// WebSocket API cannot set headers, so the token also rides a query param.
func (h *OnboardingHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *OnboardingHandler) HandleWebSocket(conn *websocket.Conn) {
	raw, _ := conn.Locals("user_id").(string)
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		_ = conn.Close()
		return
	}
	client := scanws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *OnboardingHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
