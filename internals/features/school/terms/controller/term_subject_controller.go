package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
	"ourschool_backend/internals/features/school/terms/dto"
	"ourschool_backend/internals/features/school/terms/model"
	helper "ourschool_backend/internals/helpers"
)

type TermSubjectController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTermSubjectController(db *gorm.DB) *TermSubjectController {
	return &TermSubjectController{DB: db, Validator: validator.New()}
}

// GET /terms/:id/subjects
func (ctl *TermSubjectController) ListByTerm(c *fiber.Ctx) error {
	termID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term id")
	}

	var rows []model.TermSubjectModel
	if err := ctl.DB.Preload("Subject").
		Where("term_subject_term_id = ?", termID).
		Order("term_subject_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// POST /term-subjects
func (ctl *TermSubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateTermSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var termCount, subjectCount int64
	if err := ctl.DB.Model(&model.TermModel{}).Where("term_id = ?", req.TermID).Count(&termCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if termCount == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Term not found")
	}
	if err := ctl.DB.Model(&subjectmodel.SubjectModel{}).Where("subject_id = ?", req.SubjectID).Count(&subjectCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if subjectCount == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}

	row := model.TermSubjectModel{
		TermSubjectID:            uuid.New(),
		TermSubjectTermID:        req.TermID,
		TermSubjectSubjectID:     req.SubjectID,
		TermSubjectIsActive:      true,
		TermSubjectWeight:        weight,
		TermSubjectLearningGoals: req.LearningGoals,
		TermSubjectTeacherNotes:  req.TeacherNotes,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Subject is already linked to this term")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Subject linked to term", row)
}

// PUT /term-subjects/:id (partial)
func (ctl *TermSubjectController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term subject id")
	}

	var req dto.UpdateTermSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.TermSubjectModel
	if err := ctl.DB.First(&row, "term_subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Term subject not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["term_subject_is_active"] = *req.IsActive
	}
	if req.Weight != nil {
		updates["term_subject_weight"] = *req.Weight
	}
	if req.LearningGoals != nil {
		updates["term_subject_learning_goals"] = *req.LearningGoals
	}
	if req.TeacherNotes != nil {
		updates["term_subject_teacher_notes"] = *req.TeacherNotes
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Term subject updated", row)
}

// DELETE /term-subjects/:id
func (ctl *TermSubjectController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term subject id")
	}

	res := ctl.DB.Delete(&model.TermSubjectModel{}, "term_subject_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Term subject not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
