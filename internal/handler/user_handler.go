package handler

import (
	"fmt"

	"go-shop-pos/internal/service"
	"go-shop-pos/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	service service.UserService
	cfg     *config.Config
}

func NewUserHandler(s service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{service: s, cfg: cfg}
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if len(req.Password) < h.cfg.MinPasswordLength {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Password must be at least %d characters", h.cfg.MinPasswordLength),
		})
	}

	creatorID, err := sessionUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.service.CreateUser(&req, &creatorID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "User created", "data": user.ToResponse()})
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	user, err := h.service.GetUserByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

type setPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// SetPassword is the administrative password reset for any user.
func (h *UserHandler) SetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	var req setPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.NewPassword) < h.cfg.MinPasswordLength {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Password must be at least %d characters", h.cfg.MinPasswordLength),
		})
	}
	if err := h.service.ChangePassword(id, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	deleterID, err := sessionUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if id == deleterID {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete your own account"})
	}

	if err := h.service.DeleteUser(id, &deleterID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
