package handler

import (
	"fmt"

	"go-shop-pos/internal/service"
	"go-shop-pos/pkg/config"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	cfg         *config.Config
}

func NewAuthHandler(authService service.AuthService, userService service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, cfg: cfg}
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login handles user authentication.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name and password are required"})
	}

	response, err := h.authService.Login(req.Name, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// ChangePassword lets the authenticated user change their own password.
// The minimum length is a presentation-layer contract, enforced here.
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if len(req.NewPassword) < h.cfg.MinPasswordLength {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("New password must be at least %d characters", h.cfg.MinPasswordLength),
		})
	}

	userID, err := sessionUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	userName, _ := c.Locals("user_name").(string)
	if _, err := h.authService.Authenticate(userName, req.OldPassword); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	if err := h.userService.ChangePassword(userID, req.NewPassword); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
