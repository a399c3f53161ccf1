package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/assignments/controller"
)

// AssignmentUserRoutes mounts the endpoints students work through.
func AssignmentUserRoutes(user fiber.Router, db *gorm.DB) {
	saCtl := controller.NewStudentAssignmentController(db)
	tmplCtl := controller.NewTemplateController(db)

	user.Get("/assignments", saCtl.List)
	user.Get("/assignments/:id", saCtl.GetByID)
	user.Post("/assignments/:id/start", saCtl.Start)
	user.Post("/assignments/:id/submit", saCtl.Submit)
	user.Get("/assignment-templates", tmplCtl.List)
	user.Get("/assignment-templates/:id", tmplCtl.GetByID)
}

// AssignmentAdminRoutes mounts template management, assigning and grading.
func AssignmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	saCtl := controller.NewStudentAssignmentController(db)
	tmplCtl := controller.NewTemplateController(db)

	admin.Post("/assignment-templates", tmplCtl.Create)
	admin.Put("/assignment-templates/:id", tmplCtl.Update)
	admin.Delete("/assignment-templates/:id", tmplCtl.Delete)

	admin.Post("/assignments/assign", saCtl.AssignToStudents)
	admin.Post("/assignments/:id/grade", saCtl.Grade)
	admin.Put("/assignments/:id", saCtl.Update)
	admin.Delete("/assignments/:id", saCtl.Delete)
}

// AssignmentIntegrationRoutes mounts the API-key surface used by
// external tooling to read and grade assignments.
func AssignmentIntegrationRoutes(integration fiber.Router, db *gorm.DB) {
	saCtl := controller.NewStudentAssignmentController(db)

	integration.Get("/assignments/:id", saCtl.GetByID)
	integration.Post("/assignments/:id/grade", saCtl.Grade)
}
