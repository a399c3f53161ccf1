package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/backup/controller"
)

// BackupAdminRoutes mounts export/import of the full dataset.
func BackupAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewBackupController(db)

	admin.Get("/backup/export", ctl.Export)
	admin.Post("/backup/import", ctl.Import)
}
