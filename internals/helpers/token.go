package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ourschool_backend/internals/constants"
)

// GetUserIDFromToken reads the user id set by the JWT middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user id in token")
	}
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id in token")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id in token")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if role, ok := c.Locals("role").(string); ok {
		return role
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetRoleFromToken(c) == constants.RoleAdmin
}

// IsAPIKeyCaller reports whether the request was authorized by an API key
// rather than a human session. Transactions created on this path carry no
// admin attribution.
func IsAPIKeyCaller(c *fiber.Ctx) bool {
	ok, _ := c.Locals("api_key_auth").(bool)
	return ok
}
