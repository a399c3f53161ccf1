package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/school/subjects/dto"
	"ourschool_backend/internals/features/school/subjects/model"
	helper "ourschool_backend/internals/helpers"
)

type LessonController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validator: validator.New()}
}

// GET /lessons?subject_id=&from=&to=
func (ctl *LessonController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.LessonModel{}).Preload("Subject")

	if subjectID, err := helper.ParseUUIDQuery(c, "subject_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid subject_id")
	} else if subjectID != uuid.Nil {
		q = q.Where("lesson_subject_id = ?", subjectID)
	}
	if from, err := helper.ParseDateQuery(c, "from"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid from date, want YYYY-MM-DD")
	} else if from != nil {
		q = q.Where("lesson_scheduled_date >= ?", *from)
	}
	if to, err := helper.ParseDateQuery(c, "to"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid to date, want YYYY-MM-DD")
	} else if to != nil {
		q = q.Where("lesson_scheduled_date <= ?", *to)
	}

	var rows []model.LessonModel
	if err := q.Order("lesson_scheduled_date ASC NULLS LAST, lesson_created_at ASC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// GET /lessons/:id
func (ctl *LessonController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	var row model.LessonModel
	if err := ctl.DB.Preload("Subject").First(&row, "lesson_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", row)
}

// POST /lessons
func (ctl *LessonController) Create(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Parent subject must exist before the insert hits the FK.
	var count int64
	if err := ctl.DB.Model(&model.SubjectModel{}).
		Where("subject_id = ?", req.SubjectID).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Subject not found")
	}

	row := model.LessonModel{
		LessonID:            uuid.New(),
		LessonSubjectID:     req.SubjectID,
		LessonTitle:         req.Title,
		LessonDescription:   req.Description,
		LessonScheduledDate: req.ScheduledDate,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson created", row)
}

// PUT /lessons/:id (partial)
func (ctl *LessonController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.LessonModel
	if err := ctl.DB.First(&row, "lesson_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["lesson_title"] = *req.Title
	}
	if req.Description != nil {
		updates["lesson_description"] = *req.Description
	}
	if req.ScheduledDate != nil {
		updates["lesson_scheduled_date"] = *req.ScheduledDate
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Lesson updated", row)
}

// DELETE /lessons/:id
func (ctl *LessonController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	res := ctl.DB.Delete(&model.LessonModel{}, "lesson_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
