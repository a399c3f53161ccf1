package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/journal/controller"
)

// JournalUserRoutes mounts the journal for any authenticated user.
// Scoping (own entries for students, everything for admins) happens in
// the controller, matching how students author their own entries.
func JournalUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewJournalController(db)

	user.Get("/journal/entries", ctl.List)
	user.Get("/journal/entries/:id", ctl.GetByID)
	user.Post("/journal/entries", ctl.Create)
	user.Put("/journal/entries/:id", ctl.Update)
	user.Delete("/journal/entries/:id", ctl.Delete)
}
