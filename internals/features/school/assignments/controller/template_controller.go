package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/assignments/dto"
	"ourschool_backend/internals/features/school/assignments/model"
	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
	helper "ourschool_backend/internals/helpers"
)

type TemplateController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db, Validator: validator.New()}
}

// GET /assignment-templates?subject_id=&type=&include_archived=
func (ctl *TemplateController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.AssignmentTemplateModel{}).Preload("Subject")

	if subjectID, err := helper.ParseUUIDQuery(c, "subject_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid subject_id")
	} else if subjectID != uuid.Nil {
		q = q.Where("assignment_template_subject_id = ?", subjectID)
	}
	if t := c.Query("type"); t != "" {
		if !model.ValidAssignmentType(t) {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment type")
		}
		q = q.Where("assignment_template_type = ?", t)
	}
	if !c.QueryBool("include_archived", false) {
		q = q.Where("assignment_template_is_archived = ?", false)
	}

	var rows []model.AssignmentTemplateModel
	if err := q.Order("assignment_template_created_at DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// GET /assignment-templates/:id
func (ctl *TemplateController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid template id")
	}

	var row model.AssignmentTemplateModel
	if err := ctl.DB.Preload("Subject").Preload("Lesson").
		First(&row, "assignment_template_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Template not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", row)
}

// POST /assignment-templates
func (ctl *TemplateController) Create(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := ctl.DB.Model(&subjectmodel.SubjectModel{}).
		Where("subject_id = ?", req.SubjectID).Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	typ := req.Type
	if typ == "" {
		typ = model.AssignmentTypeHomework
	}
	maxPoints := 100.0
	if req.MaxPoints != nil {
		maxPoints = *req.MaxPoints
	}
	order := 0
	if req.OrderInLesson != nil {
		order = *req.OrderInLesson
	}
	adminID, _ := helper.GetUserIDFromToken(c)

	row := model.AssignmentTemplateModel{
		AssignmentTemplateID:               uuid.New(),
		AssignmentTemplateName:             req.Name,
		AssignmentTemplateDescription:      req.Description,
		AssignmentTemplateInstructions:     req.Instructions,
		AssignmentTemplateType:             typ,
		AssignmentTemplateSubjectID:        req.SubjectID,
		AssignmentTemplateLessonID:         req.LessonID,
		AssignmentTemplateMaxPoints:        maxPoints,
		AssignmentTemplateEstimatedMinutes: req.EstimatedMinutes,
		AssignmentTemplatePrerequisites:    req.Prerequisites,
		AssignmentTemplateMaterialsNeeded:  req.MaterialsNeeded,
		AssignmentTemplateOrderInLesson:    order,
		AssignmentTemplateCreatedBy:        &adminID,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Template created", row)
}

// PUT /assignment-templates/:id (partial)
func (ctl *TemplateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid template id")
	}

	var req dto.UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.AssignmentTemplateModel
	if err := ctl.DB.First(&row, "assignment_template_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Template not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["assignment_template_name"] = *req.Name
	}
	if req.Description != nil {
		updates["assignment_template_description"] = *req.Description
	}
	if req.Instructions != nil {
		updates["assignment_template_instructions"] = *req.Instructions
	}
	if req.Type != nil {
		updates["assignment_template_type"] = *req.Type
	}
	if req.MaxPoints != nil {
		updates["assignment_template_max_points"] = *req.MaxPoints
	}
	if req.EstimatedMinutes != nil {
		updates["assignment_template_estimated_minutes"] = *req.EstimatedMinutes
	}
	if req.Prerequisites != nil {
		updates["assignment_template_prerequisites"] = *req.Prerequisites
	}
	if req.MaterialsNeeded != nil {
		updates["assignment_template_materials_needed"] = *req.MaterialsNeeded
	}
	if req.OrderInLesson != nil {
		updates["assignment_template_order_in_lesson"] = *req.OrderInLesson
	}
	if req.IsArchived != nil {
		updates["assignment_template_is_archived"] = *req.IsArchived
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Template updated", row)
}

// DELETE /assignment-templates/:id
// Templates with student instances are archived instead of deleted so
// existing grades keep their reference.
func (ctl *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid template id")
	}

	var instanceCount int64
	if err := ctl.DB.Model(&model.StudentAssignmentModel{}).
		Where("student_assignment_template_id = ?", id).
		Count(&instanceCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	if instanceCount > 0 {
		res := ctl.DB.Model(&model.AssignmentTemplateModel{}).
			Where("assignment_template_id = ?", id).
			Update("assignment_template_is_archived", true)
		if res.Error != nil {
			return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
		}
		if res.RowsAffected == 0 {
			return helper.Error(c, fiber.StatusNotFound, "Template not found")
		}
		return helper.Success(c, "Template archived (has student assignments)", nil)
	}

	res := ctl.DB.Delete(&model.AssignmentTemplateModel{}, "assignment_template_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Template not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
