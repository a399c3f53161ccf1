package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"ourschool_backend/internals/constants"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
}

type AppClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthJWT validates the bearer token (optionally falling back to the
// access_token cookie) and stores user_id and role in locals.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := ""
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" && opts.AllowCookieFallback {
			raw = c.Cookies("access_token")
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing access token")
		}

		claims := &AppClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
			}
			return []byte(opts.Secret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// AuthJWTOptional parses the token when one is presented and stores the
// identity in locals, but lets anonymous requests through. Used by the
// registration endpoint, which is open only for first-user bootstrap.
func AuthJWTOptional(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := ""
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" && opts.AllowCookieFallback {
			raw = c.Cookies("access_token")
		}
		if raw == "" {
			return c.Next()
		}

		claims := &AppClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
			}
			return []byte(opts.Secret), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireAdmin must run after AuthJWT.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "administrator access required")
		}
		return c.Next()
	}
}
