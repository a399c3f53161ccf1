package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/attendance/controller"
)

// AttendanceUserRoutes mounts the endpoints any authenticated user can read.
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	user.Get("/attendance", ctl.List)
	user.Get("/students/:id/attendance/summary", ctl.StudentSummary)
}

// AttendanceAdminRoutes mounts attendance recording and maintenance.
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)

	admin.Post("/attendance", ctl.Create)
	admin.Post("/attendance/bulk", ctl.BulkCreate)
	admin.Put("/attendance/:id", ctl.Update)
	admin.Delete("/attendance/:id", ctl.Delete)
}
