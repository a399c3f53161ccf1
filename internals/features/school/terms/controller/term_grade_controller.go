package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/terms/model"
	"ourschool_backend/internals/features/school/terms/service"
	helper "ourschool_backend/internals/helpers"
)

type TermGradeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTermGradeController(db *gorm.DB) *TermGradeController {
	return &TermGradeController{DB: db, Validator: validator.New()}
}

// GET /students/:id/term-grades?term_id=
// Admins may read any student; students only their own aggregates.
func (ctl *TermGradeController) ListForStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if !helper.IsAdmin(c) {
		callerID, err := helper.GetUserIDFromToken(c)
		if err != nil || callerID != studentID {
			return helper.Error(c, fiber.StatusForbidden, "Students may only view their own grades")
		}
	}

	q := ctl.DB.Preload("TermSubject").Preload("TermSubject.Subject").Preload("TermSubject.Term").
		Where("student_term_grade_student_id = ?", studentID)

	if termID, err := helper.ParseUUIDQuery(c, "term_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term_id")
	} else if termID != uuid.Nil {
		q = q.Joins("JOIN term_subjects ON term_subjects.term_subject_id = student_term_grades.student_term_grade_term_subject_id").
			Where("term_subjects.term_subject_term_id = ?", termID)
	}

	var rows []model.StudentTermGradeModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// POST /term-grades/:id/finalize?force=
// force restamps a grade that was already finalized.
func (ctl *TermGradeController) Finalize(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term grade id")
	}

	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing admin identity")
	}

	grade, err := service.FinalizeGrade(ctl.DB, id, &adminID, c.QueryBool("force"))
	if err != nil {
		if errors.Is(err, service.ErrGradeFinalized) {
			return helper.Error(c, fiber.StatusConflict, "Term grade is already finalized, pass force=true to restamp")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Term grade not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Term grade finalized", grade)
}
