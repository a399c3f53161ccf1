package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/constants"
	"ourschool_backend/internals/features/journal/dto"
	"ourschool_backend/internals/features/journal/model"
	usermodel "ourschool_backend/internals/features/users/model"
	helper "ourschool_backend/internals/helpers"
)

type JournalController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewJournalController(db *gorm.DB) *JournalController {
	return &JournalController{DB: db, Validator: validator.New()}
}

type entryView struct {
	model.JournalEntryModel
	AuthorName  string `json:"author_name"`
	StudentName string `json:"student_name"`
	IsOwnEntry  bool   `json:"is_own_entry"`
}

func (ctl *JournalController) toView(c *fiber.Ctx, e *model.JournalEntryModel) entryView {
	callerID, _ := helper.GetUserIDFromToken(c)
	v := entryView{JournalEntryModel: *e, IsOwnEntry: e.JournalEntryAuthorID == callerID}
	if e.Author != nil {
		v.AuthorName = e.Author.FullName()
	}
	if e.Student != nil {
		v.StudentName = e.Student.FullName()
	}
	return v
}

// GET /journal/entries?student_id=
// Students see their own entries; admins see everything, optionally
// filtered by student.
func (ctl *JournalController) List(c *fiber.Ctx) error {
	q := ctl.DB.Preload("Student").Preload("Author").
		Order("journal_entry_date DESC, journal_entry_created_at DESC")

	if helper.IsAdmin(c) {
		if studentID, err := helper.ParseUUIDQuery(c, "student_id"); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid student_id")
		} else if studentID != uuid.Nil {
			q = q.Where("journal_entry_student_id = ?", studentID)
		}
	} else {
		callerID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
		}
		q = q.Where("journal_entry_student_id = ?", callerID)
	}

	var rows []model.JournalEntryModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]entryView, 0, len(rows))
	for i := range rows {
		out = append(out, ctl.toView(c, &rows[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /journal/entries/:id
func (ctl *JournalController) GetByID(c *fiber.Ctx) error {
	row, fe := ctl.loadVisible(c)
	if fe != nil {
		return helper.Error(c, fe.Code, fe.Message)
	}
	return helper.Success(c, "OK", ctl.toView(c, row))
}

// POST /journal/entries
func (ctl *JournalController) Create(c *fiber.Ctx) error {
	var req dto.CreateJournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
	}

	studentID := callerID
	if helper.IsAdmin(c) {
		if req.StudentID == nil {
			return helper.Error(c, fiber.StatusBadRequest, "student_id is required for admin entries")
		}
		studentID = *req.StudentID

		var student usermodel.UserModel
		if err := ctl.DB.First(&student, "id = ? AND role = ?", studentID, constants.RoleStudent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusNotFound, "Student not found")
			}
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	entryDate := time.Now()
	if req.EntryDate != nil {
		entryDate, _ = time.Parse(helper.DateLayout, *req.EntryDate)
	}

	row := model.JournalEntryModel{
		JournalEntryID:        uuid.New(),
		JournalEntryStudentID: studentID,
		JournalEntryAuthorID:  callerID,
		JournalEntryTitle:     req.Title,
		JournalEntryContent:   req.Content,
		JournalEntryDate:      entryDate,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Journal entry created", row)
}

// PUT /journal/entries/:id
// Only the original author or an admin may edit.
func (ctl *JournalController) Update(c *fiber.Ctx) error {
	row, fe := ctl.loadEditable(c)
	if fe != nil {
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req dto.UpdateJournalEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["journal_entry_title"] = *req.Title
	}
	if req.Content != nil {
		updates["journal_entry_content"] = *req.Content
	}
	if req.EntryDate != nil {
		d, _ := time.Parse(helper.DateLayout, *req.EntryDate)
		updates["journal_entry_date"] = d
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Journal entry updated", row)
}

// DELETE /journal/entries/:id
func (ctl *JournalController) Delete(c *fiber.Ctx) error {
	row, fe := ctl.loadEditable(c)
	if fe != nil {
		return helper.Error(c, fe.Code, fe.Message)
	}
	if err := ctl.DB.Delete(&model.JournalEntryModel{}, "journal_entry_id = ?", row.JournalEntryID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// loadVisible fetches :id and enforces read scope: students may only
// read entries about themselves.
func (ctl *JournalController) loadVisible(c *fiber.Ctx) (*model.JournalEntryModel, *fiber.Error) {
	row, fe := ctl.load(c)
	if fe != nil {
		return nil, fe
	}
	if helper.IsAdmin(c) {
		return row, nil
	}
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil || callerID != row.JournalEntryStudentID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your journal entry")
	}
	return row, nil
}

// loadEditable enforces write scope: the original author or an admin.
func (ctl *JournalController) loadEditable(c *fiber.Ctx) (*model.JournalEntryModel, *fiber.Error) {
	row, fe := ctl.load(c)
	if fe != nil {
		return nil, fe
	}
	if helper.IsAdmin(c) {
		return row, nil
	}
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil || callerID != row.JournalEntryAuthorID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only the author can change this entry")
	}
	return row, nil
}

func (ctl *JournalController) load(c *fiber.Ctx) (*model.JournalEntryModel, *fiber.Error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid journal entry id")
	}
	var row model.JournalEntryModel
	if err := ctl.DB.Preload("Student").Preload("Author").
		First(&row, "journal_entry_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Journal entry not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}
