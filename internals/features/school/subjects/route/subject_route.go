package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/subjects/controller"
)

// SubjectUserRoutes mounts the read-only subject and lesson endpoints.
func SubjectUserRoutes(user fiber.Router, db *gorm.DB) {
	subjectCtl := controller.NewSubjectController(db)
	lessonCtl := controller.NewLessonController(db)

	user.Get("/subjects", subjectCtl.List)
	user.Get("/subjects/:id", subjectCtl.GetByID)
	user.Get("/lessons", lessonCtl.List)
	user.Get("/lessons/:id", lessonCtl.GetByID)
}

// SubjectAdminRoutes mounts the subject and lesson management endpoints.
func SubjectAdminRoutes(admin fiber.Router, db *gorm.DB) {
	subjectCtl := controller.NewSubjectController(db)
	lessonCtl := controller.NewLessonController(db)

	admin.Post("/subjects", subjectCtl.Create)
	admin.Put("/subjects/:id", subjectCtl.Update)
	admin.Delete("/subjects/:id", subjectCtl.Delete)

	admin.Post("/lessons", lessonCtl.Create)
	admin.Put("/lessons/:id", lessonCtl.Update)
	admin.Delete("/lessons/:id", lessonCtl.Delete)
}
