package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/system/apikeys/controller"
)

// APIKeyAdminRoutes mounts the API key management endpoints.
func APIKeyAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAPIKeyController(db)

	admin.Post("/api-keys", ctl.Create)
	admin.Get("/api-keys", ctl.List)
	admin.Delete("/api-keys/:id", ctl.Revoke)
}
