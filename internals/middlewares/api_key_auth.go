package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	apikeymodel "ourschool_backend/internals/features/system/apikeys/model"
)

// AuthAPIKey authorizes machine integrations via the X-API-Key header.
// Only the SHA-256 digest of a key is ever stored. Requests on this path
// carry no admin attribution (api_key_auth local is set instead).
func AuthAPIKey(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get("X-API-Key"))
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing API key")
		}

		sum := sha256.Sum256([]byte(raw))
		digest := hex.EncodeToString(sum[:])

		var key apikeymodel.APIKeyModel
		if err := db.
			Where("api_key_hash = ? AND api_key_is_active = ?", digest, true).
			First(&key).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid API key")
		}

		now := time.Now()
		_ = db.Model(&apikeymodel.APIKeyModel{}).
			Where("api_key_id = ?", key.APIKeyID).
			Update("api_key_last_used_at", now).Error

		c.Locals("api_key_auth", true)
		c.Locals("api_key_id", key.APIKeyID)
		return c.Next()
	}
}
