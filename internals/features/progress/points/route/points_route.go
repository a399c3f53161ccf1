package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/progress/points/controller"
)

// PointsUserRoutes mounts the self-service points endpoints.
func PointsUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewPointsController(db)

	user.Get("/points/status", ctl.Status)
	user.Get("/points/me", ctl.MyBalance)
	user.Get("/points/me/transactions", ctl.MyTransactions)
	user.Post("/points/spend", ctl.Spend)
}

// PointsIntegrationRoutes mounts the API-key surface. Adjustments made
// here carry no admin attribution in the ledger.
func PointsIntegrationRoutes(integration fiber.Router, db *gorm.DB) {
	ctl := controller.NewPointsController(db)

	integration.Post("/points/adjust", ctl.Adjust)
	integration.Get("/students/:id/points", ctl.StudentBalance)
}

// PointsAdminRoutes mounts points administration endpoints.
func PointsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewPointsController(db)

	admin.Put("/points/status", ctl.Toggle)
	admin.Post("/points/adjust", ctl.Adjust)
	admin.Get("/points/overview", ctl.Overview)
	admin.Get("/students/:id/points", ctl.StudentBalance)
	admin.Get("/students/:id/points/transactions", ctl.StudentTransactions)
}
