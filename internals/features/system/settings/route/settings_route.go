package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/system/settings/controller"
)

// SettingsAdminRoutes mounts the system settings management endpoints.
func SettingsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(db)

	admin.Get("/settings", ctl.List)
	admin.Get("/settings/:key", ctl.GetByKey)
	admin.Put("/settings/:key", ctl.Upsert)
	admin.Delete("/settings/:key", ctl.Delete)
}
