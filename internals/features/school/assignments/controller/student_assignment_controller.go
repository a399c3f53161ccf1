package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	pointsservice "ourschool_backend/internals/features/progress/points/service"
	"ourschool_backend/internals/features/school/assignments/dto"
	"ourschool_backend/internals/features/school/assignments/model"
	"ourschool_backend/internals/features/school/assignments/service"
	termservice "ourschool_backend/internals/features/school/terms/service"
	usermodel "ourschool_backend/internals/features/users/model"
	helper "ourschool_backend/internals/helpers"
)

type StudentAssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentAssignmentController(db *gorm.DB) *StudentAssignmentController {
	return &StudentAssignmentController{DB: db, Validator: validator.New()}
}

// POST /assignments/assign
// Creates one instance per student. Students already holding an
// instance of the template are skipped, not errored.
func (ctl *StudentAssignmentController) AssignToStudents(c *fiber.Ctx) error {
	var req dto.AssignToStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var tmpl model.AssignmentTemplateModel
	if err := ctl.DB.First(&tmpl, "assignment_template_id = ?", req.TemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Template not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if tmpl.AssignmentTemplateIsArchived {
		return helper.Error(c, fiber.StatusConflict, "Cannot assign an archived template")
	}

	assignedDate := time.Now().Truncate(24 * time.Hour)
	if req.AssignedDate != nil {
		assignedDate, _ = time.Parse(helper.DateLayout, *req.AssignedDate)
	}
	var dueDate *time.Time
	if req.DueDate != nil {
		d, _ := time.Parse(helper.DateLayout, *req.DueDate)
		if d.Before(assignedDate) {
			return helper.Error(c, fiber.StatusBadRequest, "due_date must not precede assigned_date")
		}
		dueDate = &d
	}

	adminID, _ := helper.GetUserIDFromToken(c)

	var created []model.StudentAssignmentModel
	skipped := 0
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range req.StudentIDs {
			var student usermodel.UserModel
			if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("student %s not found", studentID))
				}
				return err
			}
			if !student.IsStudent() {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("user %s is not a student", studentID))
			}

			var existing int64
			if err := tx.Model(&model.StudentAssignmentModel{}).
				Where("student_assignment_template_id = ? AND student_assignment_student_id = ?", req.TemplateID, studentID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				skipped++
				continue
			}

			row := model.StudentAssignmentModel{
				StudentAssignmentID:         uuid.New(),
				StudentAssignmentTemplateID: req.TemplateID,
				StudentAssignmentStudentID:  studentID,
				AssignedDate:                assignedDate,
				DueDate:                     dueDate,
				Status:                      model.StatusNotStarted,
				CustomInstructions:          req.CustomInstructions,
				CustomMaxPoints:             req.CustomMaxPoints,
				AssignedBy:                  &adminID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.Error(c, fe.Code, fe.Message)
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Assignments created", fiber.Map{
		"created": created,
		"skipped": skipped,
	})
}

// GET /assignments?student_id=&subject_id=&status=&from=&to=
// Students are always scoped to their own assignments.
func (ctl *StudentAssignmentController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "assigned_date", "desc", helper.DefaultOpts)

	q := ctl.DB.Model(&model.StudentAssignmentModel{}).
		Preload("Template").Preload("Template.Subject")

	if helper.IsAdmin(c) {
		if studentID, err := helper.ParseUUIDQuery(c, "student_id"); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid student_id")
		} else if studentID != uuid.Nil {
			q = q.Where("student_assignment_student_id = ?", studentID)
		}
	} else {
		callerID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
		}
		q = q.Where("student_assignment_student_id = ?", callerID)
	}

	if subjectID, err := helper.ParseUUIDQuery(c, "subject_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid subject_id")
	} else if subjectID != uuid.Nil {
		q = q.Joins("JOIN assignment_templates ON assignment_templates.assignment_template_id = student_assignments.student_assignment_template_id").
			Where("assignment_templates.assignment_template_subject_id = ?", subjectID)
	}
	if s := c.Query("status"); s != "" {
		if !model.ValidAssignmentStatus(s) {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid status")
		}
		q = q.Where("status = ?", s)
	}
	if from, err := helper.ParseDateQuery(c, "from"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid from date, want YYYY-MM-DD")
	} else if from != nil {
		q = q.Where("assigned_date >= ?", *from)
	}
	if to, err := helper.ParseDateQuery(c, "to"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid to date, want YYYY-MM-DD")
	} else if to != nil {
		q = q.Where("assigned_date <= ?", *to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"assigned_date": "student_assignments.assigned_date",
		"due_date":      "student_assignments.due_date",
		"status":        "student_assignments.status",
		"graded_date":   "student_assignments.graded_date",
	}, "assigned_date")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentAssignmentModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"assignments": rows,
		"pagination":  helper.BuildMeta(total, p),
	})
}

// GET /assignments/:id
func (ctl *StudentAssignmentController) GetByID(c *fiber.Ctx) error {
	row, fe := ctl.loadOwned(c, true)
	if fe != nil {
		return helper.Error(c, fe.Code, fe.Message)
	}
	return helper.Success(c, "OK", row)
}

// POST /assignments/:id/start
func (ctl *StudentAssignmentController) Start(c *fiber.Ctx) error {
	row, fe := ctl.loadOwned(c, false)
	if fe != nil {
		return helper.Error(c, fe.Code, fe.Message)
	}
	if row.Status != model.StatusNotStarted && row.Status != model.StatusOverdue {
		return helper.Error(c, fiber.StatusConflict, "Assignment has already been started")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       model.StatusInProgress,
		"started_date": now,
	}
	if err := ctl.DB.Model(row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Assignment started", row)
}

// POST /assignments/:id/submit
func (ctl *StudentAssignmentController) Submit(c *fiber.Ctx) error {
	row, fe := ctl.loadOwned(c, false)
	if fe != nil {
		return helper.Error(c, fe.Code, fe.Message)
	}
	if row.Status == model.StatusGraded {
		return helper.Error(c, fiber.StatusConflict, "Assignment has already been graded")
	}
	if row.Status == model.StatusSubmitted {
		return helper.Error(c, fiber.StatusConflict, "Assignment has already been submitted")
	}

	var req dto.SubmitAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         model.StatusSubmitted,
		"submitted_date": now,
	}
	if row.StartedDate == nil {
		updates["started_date"] = now
	}
	if req.SubmissionNotes != nil {
		updates["submission_notes"] = *req.SubmissionNotes
	}
	if len(req.SubmissionArtifacts) > 0 {
		updates["submission_artifacts"] = req.SubmissionArtifacts
	}
	if req.TimeSpentMinutes != nil {
		updates["time_spent_minutes"] = *req.TimeSpentMinutes
	}
	if err := ctl.DB.Model(row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Assignment submitted", row)
}

// POST /assignments/:id/grade
// Writes the grade and recomputes the term aggregate in one
// transaction. Points are awarded after commit and must never fail the
// grade itself.
func (ctl *StudentAssignmentController) Grade(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var req dto.GradeAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.StudentAssignmentModel
	if err := ctl.DB.Preload("Template").First(&row, "student_assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	maxPoints := row.EffectiveMaxPoints()
	if maxPoints <= 0 {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Assignment has no positive max points")
	}
	if req.PointsEarned < 0 || req.PointsEarned > maxPoints {
		return helper.Error(c, fiber.StatusUnprocessableEntity,
			fmt.Sprintf("points_earned must be between 0 and %.2f", maxPoints))
	}

	graderID, err := helper.GetUserIDFromToken(c)
	var gradedBy *uuid.UUID
	if err == nil {
		gradedBy = &graderID
	}

	pct, _ := service.Percentage(req.PointsEarned, maxPoints)
	letter := service.LetterGrade(pct)
	now := time.Now()

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"points_earned":    req.PointsEarned,
			"percentage_grade": pct,
			"letter_grade":     letter,
			"is_graded":        true,
			"graded_date":      now,
			"graded_by":        gradedBy,
			"status":           model.StatusGraded,
			"completed_date":   now,
		}
		if req.TeacherFeedback != nil {
			updates["teacher_feedback"] = *req.TeacherFeedback
		}
		if err := tx.Model(&model.StudentAssignmentModel{}).
			Where("student_assignment_id = ?", row.StudentAssignmentID).
			Updates(updates).Error; err != nil {
			return err
		}
		return termservice.RecalcStudentTermGrade(
			tx,
			row.StudentAssignmentStudentID,
			row.Template.AssignmentTemplateSubjectID,
		)
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Preload("Template").First(&row, "student_assignment_id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	// Best effort: a points failure must not unwind a committed grade.
	if err := pointsservice.AwardAssignmentPoints(ctl.DB, &row); err != nil {
		log.Printf("[WARN] points award failed for assignment %s: %v", row.StudentAssignmentID, err)
	}

	return helper.Success(c, "Assignment graded", row)
}

// PUT /assignments/:id (admin partial update)
func (ctl *StudentAssignmentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var req dto.UpdateStudentAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.StudentAssignmentModel
	if err := ctl.DB.First(&row, "student_assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.DueDate != nil {
		d, _ := time.Parse(helper.DateLayout, *req.DueDate)
		updates["due_date"] = d
	}
	if req.ExtendedDueDate != nil {
		d, _ := time.Parse(helper.DateLayout, *req.ExtendedDueDate)
		updates["extended_due_date"] = d
	}
	if req.Status != nil {
		if *req.Status == model.StatusGraded {
			return helper.Error(c, fiber.StatusUnprocessableEntity, "Use the grade endpoint to mark graded")
		}
		updates["status"] = *req.Status
	}
	if req.TeacherFeedback != nil {
		updates["teacher_feedback"] = *req.TeacherFeedback
	}
	if req.StudentNotes != nil {
		updates["student_notes"] = *req.StudentNotes
	}
	if req.CustomInstructions != nil {
		updates["custom_instructions"] = *req.CustomInstructions
	}
	if req.CustomMaxPoints != nil {
		updates["custom_max_points"] = *req.CustomMaxPoints
	}
	if req.TimeSpentMinutes != nil {
		updates["time_spent_minutes"] = *req.TimeSpentMinutes
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Assignment updated", row)
}

// DELETE /assignments/:id
func (ctl *StudentAssignmentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var row model.StudentAssignmentModel
	if err := ctl.DB.Preload("Template").First(&row, "student_assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	wasGraded := row.Status == model.StatusGraded
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.StudentAssignmentModel{}, "student_assignment_id = ?", id).Error; err != nil {
			return err
		}
		if wasGraded && row.Template != nil {
			// Removing a graded assignment changes the aggregate.
			return termservice.RecalcStudentTermGrade(
				tx,
				row.StudentAssignmentStudentID,
				row.Template.AssignmentTemplateSubjectID,
			)
		}
		return nil
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// loadOwned fetches the assignment on :id and enforces that students
// only touch their own rows. Admins pass with adminOK.
func (ctl *StudentAssignmentController) loadOwned(c *fiber.Ctx, adminOK bool) (*model.StudentAssignmentModel, *fiber.Error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid assignment id")
	}

	var row model.StudentAssignmentModel
	if err := ctl.DB.Preload("Template").Preload("Template.Subject").
		First(&row, "student_assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if adminOK && (helper.IsAdmin(c) || helper.IsAPIKeyCaller(c)) {
		return &row, nil
	}
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil || callerID != row.StudentAssignmentStudentID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your assignment")
	}
	return &row, nil
}
