package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourschool_backend/internals/features/school/attendance/dto"
	"ourschool_backend/internals/features/school/attendance/model"
	"ourschool_backend/internals/features/school/attendance/service"
	helper "ourschool_backend/internals/helpers"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validator: validator.New()}
}

// GET /attendance?student_id=&from=&to=&status=
// Students are scoped to their own records.
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.AttendanceRecordModel{})

	if helper.IsAdmin(c) {
		if studentID, err := helper.ParseUUIDQuery(c, "student_id"); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid student_id")
		} else if studentID != uuid.Nil {
			q = q.Where("attendance_student_id = ?", studentID)
		}
	} else {
		callerID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
		}
		q = q.Where("attendance_student_id = ?", callerID)
	}

	if s := c.Query("status"); s != "" {
		if !model.ValidAttendanceStatus(s) {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid attendance status")
		}
		q = q.Where("attendance_status = ?", s)
	}
	if from, err := helper.ParseDateQuery(c, "from"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid from date, want YYYY-MM-DD")
	} else if from != nil {
		q = q.Where("attendance_date >= ?", *from)
	}
	if to, err := helper.ParseDateQuery(c, "to"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid to date, want YYYY-MM-DD")
	} else if to != nil {
		q = q.Where("attendance_date <= ?", *to)
	}

	var rows []model.AttendanceRecordModel
	if err := q.Order("attendance_date DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// POST /attendance
// Upserts on (student, date) so re-recording a day is idempotent.
func (ctl *AttendanceController) Create(c *fiber.Ctx) error {
	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	day, _ := time.Parse(helper.DateLayout, req.Date)
	recorderID, _ := helper.GetUserIDFromToken(c)

	row := model.AttendanceRecordModel{
		AttendanceID:         uuid.New(),
		AttendanceStudentID:  req.StudentID,
		AttendanceDate:       day,
		AttendanceStatus:     req.Status,
		AttendanceNotes:      req.Notes,
		AttendanceRecordedBy: &recorderID,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attendance_student_id"}, {Name: "attendance_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"attendance_status", "attendance_notes", "attendance_recorded_by", "attendance_updated_at"}),
	}).Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attendance recorded", row)
}

// POST /attendance/bulk
// One date, many students, in a single transaction.
func (ctl *AttendanceController) BulkCreate(c *fiber.Ctx) error {
	var req dto.BulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	day, _ := time.Parse(helper.DateLayout, req.Date)
	recorderID, _ := helper.GetUserIDFromToken(c)

	rows := make([]model.AttendanceRecordModel, 0, len(req.Entries))
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range req.Entries {
			row := model.AttendanceRecordModel{
				AttendanceID:         uuid.New(),
				AttendanceStudentID:  e.StudentID,
				AttendanceDate:       day,
				AttendanceStatus:     e.Status,
				AttendanceNotes:      e.Notes,
				AttendanceRecordedBy: &recorderID,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "attendance_student_id"}, {Name: "attendance_date"}},
				DoUpdates: clause.AssignmentColumns([]string{"attendance_status", "attendance_notes", "attendance_recorded_by", "attendance_updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attendance recorded", rows)
}

// PUT /attendance/:id (partial)
func (ctl *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.AttendanceRecordModel
	if err := ctl.DB.First(&row, "attendance_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["attendance_status"] = *req.Status
	}
	if req.Notes != nil {
		updates["attendance_notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", row)
	}

	if err := ctl.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Attendance updated", row)
}

// DELETE /attendance/:id
func (ctl *AttendanceController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	res := ctl.DB.Delete(&model.AttendanceRecordModel{}, "attendance_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Attendance record not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /students/:id/attendance/summary?academic_year= or ?from=&to=
func (ctl *AttendanceController) StudentSummary(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if !helper.IsAdmin(c) {
		callerID, err := helper.GetUserIDFromToken(c)
		if err != nil || callerID != studentID {
			return helper.Error(c, fiber.StatusForbidden, "Students may only view their own attendance")
		}
	}

	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid from date, want YYYY-MM-DD")
	}
	to, err := helper.ParseDateQuery(c, "to")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid to date, want YYYY-MM-DD")
	}

	q := ctl.DB.Where("attendance_student_id = ?", studentID)
	if academicYear := c.Query("academic_year"); academicYear != "" || (from != nil && to != nil) {
		start, end, err := service.ResolveDateRange(ctl.DB, academicYear, from, to)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		q = q.Where("attendance_date >= ? AND attendance_date <= ?", start, end)
	}

	var records []model.AttendanceRecordModel
	if err := q.Find(&records).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	requiredDays, err := service.RequiredDaysOfInstruction(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	stats := service.Statistics(records)
	summary := fiber.Map{
		"student_id":        studentID,
		"statistics":        stats,
		"attendance_rate":   service.Rate(records, requiredDays),
		"required_days":     requiredDays,
		"days_recorded":     len(records),
		"recent_activity":   service.RecentActivity(records, 3),
		"first_absence":     nil,
	}
	if first := service.FirstAbsence(records); first != nil {
		summary["first_absence"] = first.Format(helper.DateLayout)
	}
	return helper.Success(c, "OK", summary)
}
