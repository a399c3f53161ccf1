package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/terms/controller"
)

// TermUserRoutes mounts the read endpoints shared by all users.
func TermUserRoutes(user fiber.Router, db *gorm.DB) {
	termCtl := controller.NewTermController(db)
	termSubjectCtl := controller.NewTermSubjectController(db)
	gradeCtl := controller.NewTermGradeController(db)

	user.Get("/terms", termCtl.List)
	user.Get("/terms/active", termCtl.Active)
	user.Get("/terms/:id", termCtl.GetByID)
	user.Get("/terms/:id/subjects", termSubjectCtl.ListByTerm)
	user.Get("/students/:id/term-grades", gradeCtl.ListForStudent)
}

// TermAdminRoutes mounts term management, linking and grade finalization.
func TermAdminRoutes(admin fiber.Router, db *gorm.DB) {
	termCtl := controller.NewTermController(db)
	termSubjectCtl := controller.NewTermSubjectController(db)
	gradeCtl := controller.NewTermGradeController(db)

	admin.Post("/terms", termCtl.Create)
	admin.Put("/terms/:id", termCtl.Update)
	admin.Delete("/terms/:id", termCtl.Delete)
	admin.Post("/terms/deactivate", termCtl.Deactivate)
	admin.Post("/terms/calculate-grades", termCtl.CalculateGrades)
	admin.Post("/terms/:id/activate", termCtl.Activate)

	admin.Post("/term-subjects", termSubjectCtl.Create)
	admin.Put("/term-subjects/:id", termSubjectCtl.Update)
	admin.Delete("/term-subjects/:id", termSubjectCtl.Delete)

	admin.Post("/term-grades/:id/finalize", gradeCtl.Finalize)
}
