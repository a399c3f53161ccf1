package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/terms/dto"
	"ourschool_backend/internals/features/school/terms/model"
	"ourschool_backend/internals/features/school/terms/service"
	helper "ourschool_backend/internals/helpers"
)

type TermController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTermController(db *gorm.DB) *TermController {
	return &TermController{DB: db, Validator: validator.New()}
}

// GET /terms?academic_year=
func (ctl *TermController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.TermModel{})
	if year := c.Query("academic_year"); year != "" {
		q = q.Where("term_academic_year = ?", year)
	}

	var rows []model.TermModel
	if err := q.Order("term_start_date DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// GET /terms/active
func (ctl *TermController) Active(c *fiber.Ctx) error {
	term, err := service.ActiveTerm(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if term == nil {
		return helper.Error(c, fiber.StatusNotFound, "No active term")
	}
	return helper.Success(c, "OK", term)
}

// GET /terms/:id
func (ctl *TermController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term id")
	}

	var row model.TermModel
	if err := ctl.DB.First(&row, "term_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Term not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", row)
}

// POST /terms
func (ctl *TermController) Create(c *fiber.Ctx) error {
	var req dto.CreateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	start, _ := time.Parse(helper.DateLayout, req.StartDate)
	end, _ := time.Parse(helper.DateLayout, req.EndDate)
	if end.Before(start) {
		return helper.Error(c, fiber.StatusBadRequest, "term_end_date must not precede term_start_date")
	}

	termType := req.Type
	if termType == "" {
		termType = model.TermTypeSemester
	}
	order := 1
	if req.Order != nil {
		order = *req.Order
	}

	adminID, _ := helper.GetUserIDFromToken(c)

	row := model.TermModel{
		TermID:           uuid.New(),
		TermName:         req.Name,
		TermDescription:  req.Description,
		TermStartDate:    start,
		TermEndDate:      end,
		TermAcademicYear: req.AcademicYear,
		TermType:         termType,
		TermOrder:        order,
		TermCreatedBy:    &adminID,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Term created", row)
}

// PUT /terms/:id (partial)
func (ctl *TermController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term id")
	}

	var req dto.UpdateTermRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.TermModel
	if err := ctl.DB.First(&row, "term_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Term not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["term_name"] = *req.Name
	}
	if req.Description != nil {
		updates["term_description"] = *req.Description
	}
	start := row.TermStartDate
	end := row.TermEndDate
	if req.StartDate != nil {
		start, _ = time.Parse(helper.DateLayout, *req.StartDate)
		updates["term_start_date"] = start
	}
	if req.EndDate != nil {
		end, _ = time.Parse(helper.DateLayout, *req.EndDate)
		updates["term_end_date"] = end
	}
	if end.Before(start) {
		return helper.Error(c, fiber.StatusBadRequest, "term_end_date must not precede term_start_date")
	}
	if req.AcademicYear != nil {
		updates["term_academic_year"] = *req.AcademicYear
	}
	if req.Type != nil {
		updates["term_type"] = *req.Type
	}
	if req.Order != nil {
		updates["term_order"] = *req.Order
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Term updated", row)
}

// POST /terms/:id/activate
func (ctl *TermController) Activate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term id")
	}

	term, err := service.ActivateTerm(ctl.DB, id)
	if err != nil {
		if errors.Is(err, service.ErrTermNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Term not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Term activated", term)
}

// POST /terms/deactivate
func (ctl *TermController) Deactivate(c *fiber.Ctx) error {
	if err := service.DeactivateTerm(ctl.DB); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Active term cleared", nil)
}

// DELETE /terms/:id
func (ctl *TermController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term id")
	}

	active, err := service.ActiveTerm(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if active != nil && active.TermID == id {
		return helper.Error(c, fiber.StatusConflict, "Cannot delete the active term")
	}

	res := ctl.DB.Delete(&model.TermModel{}, "term_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Term not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /terms/calculate-grades
func (ctl *TermController) CalculateGrades(c *fiber.Ctx) error {
	processed, err := service.CalculateAllTermGrades(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Term grades recalculated", fiber.Map{
		"pairs_processed": processed,
	})
}
