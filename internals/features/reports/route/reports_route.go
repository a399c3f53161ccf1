package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/reports/controller"
)

// ReportsUserRoutes mounts reports available to any authenticated user.
func ReportsUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportsController(db)

	user.Get("/reports/student/overview", ctl.StudentOverview)
	user.Get("/reports/report-card/:student_id/:term_id", ctl.ReportCard)
	user.Get("/reports/academic-years", ctl.AcademicYears)
	user.Get("/activity/recent", ctl.RecentActivity)
}

// ReportsAdminRoutes mounts the whole-school reports.
func ReportsAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewReportsController(db)

	admin.Get("/reports/admin/overview", ctl.AdminOverview)
	admin.Get("/reports/attendance", ctl.BulkAttendance)
}
