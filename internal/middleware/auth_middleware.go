package middleware

import (
	"strings"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT and sets the session identity in the request
// context. Role comes from the store, not the token, so a role change takes
// effect immediately.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("user_name", user.Name)
		c.Locals("user_role", string(user.Role))

		return c.Next()
	}
}

// Authorize is the single authorization check point: every guarded route
// names an operation and the role policy table decides. Sellers get catalog
// reads, sale creation and receipts; Administrators get everything.
func Authorize(op string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleValue, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}
		if !model.Role(roleValue).Can(op) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: role '" + roleValue + "' may not perform '" + op + "'",
			})
		}
		return c.Next()
	}
}
