package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/constants"
	"ourschool_backend/internals/features/reports/service"
	attendancemodel "ourschool_backend/internals/features/school/attendance/model"
	attendanceservice "ourschool_backend/internals/features/school/attendance/service"
	usermodel "ourschool_backend/internals/features/users/model"
	helper "ourschool_backend/internals/helpers"
)

type ReportsController struct {
	DB *gorm.DB
}

func NewReportsController(db *gorm.DB) *ReportsController {
	return &ReportsController{DB: db}
}

// GET /reports/student/overview
// Students see themselves; admins may pass ?student_id=.
func (ctl *ReportsController) StudentOverview(c *fiber.Ctx) error {
	var studentID uuid.UUID
	if helper.IsAdmin(c) {
		id, err := helper.ParseUUIDQuery(c, "student_id")
		if err != nil || id == uuid.Nil {
			return helper.Error(c, fiber.StatusBadRequest, "student_id is required for admins")
		}
		studentID = id
	} else {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
		}
		studentID = id
	}

	report, err := service.BuildStudentOverview(ctl.DB, studentID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", report)
}

// GET /reports/admin/overview
func (ctl *ReportsController) AdminOverview(c *fiber.Ctx) error {
	report, err := service.BuildAdminOverview(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", report)
}

// GET /reports/report-card/:student_id/:term_id
func (ctl *ReportsController) ReportCard(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}
	termID, err := helper.ParseUUIDParam(c, "term_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid term id")
	}

	if !helper.IsAdmin(c) {
		callerID, err := helper.GetUserIDFromToken(c)
		if err != nil || callerID != studentID {
			return helper.Error(c, fiber.StatusForbidden, "Students may only view their own report card")
		}
	}

	card, err := service.BuildReportCard(ctl.DB, studentID, termID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		case errors.Is(err, service.ErrTermNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Term not found")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.Success(c, "OK", card)
}

// GET /reports/academic-years
func (ctl *ReportsController) AcademicYears(c *fiber.Ctx) error {
	years, err := service.ListAcademicYears(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", years)
}

// GET /activity/recent?limit=&days=
// Admins get the whole household's feed; students only their own.
func (ctl *ReportsController) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}
	days := c.QueryInt("days", 7)
	if days < 1 || days > 30 {
		days = 7
	}

	studentID := uuid.Nil
	if !helper.IsAdmin(c) {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
		}
		studentID = id
	}

	items, err := service.BuildRecentActivity(ctl.DB, studentID, limit, days)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{
		"activities": items,
		"total":      len(items),
	})
}

// GET /reports/attendance?academic_year= or ?from=&to=
// Every active student's attendance picture for the window.
func (ctl *ReportsController) BulkAttendance(c *fiber.Ctx) error {
	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid from date, want YYYY-MM-DD")
	}
	to, err := helper.ParseDateQuery(c, "to")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid to date, want YYYY-MM-DD")
	}

	start, end, err := attendanceservice.ResolveDateRange(ctl.DB, c.Query("academic_year"), from, to)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	requiredDays, err := attendanceservice.RequiredDaysOfInstruction(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var students []usermodel.UserModel
	if err := ctl.DB.
		Where("role = ? AND is_active = ?", constants.RoleStudent, true).
		Order("first_name ASC").
		Find(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	reports := make([]fiber.Map, 0, len(students))
	for i := range students {
		s := &students[i]
		var records []attendancemodel.AttendanceRecordModel
		if err := ctl.DB.
			Where("attendance_student_id = ?", s.ID).
			Where("attendance_date >= ? AND attendance_date <= ?", start, end).
			Find(&records).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		entry := fiber.Map{
			"student_id":      s.ID,
			"student_name":    s.FullName(),
			"statistics":      attendanceservice.Statistics(records),
			"attendance_rate": attendanceservice.Rate(records, requiredDays),
			"days_recorded":   len(records),
			"recent_activity": attendanceservice.RecentActivity(records, 3),
		}
		if first := attendanceservice.FirstAbsence(records); first != nil {
			entry["first_absence"] = first.Format(helper.DateLayout)
		}
		reports = append(reports, entry)
	}

	return helper.Success(c, "OK", fiber.Map{
		"start_date":    start.Format(helper.DateLayout),
		"end_date":      end.Format(helper.DateLayout),
		"required_days": requiredDays,
		"school_days":   attendanceservice.SchoolDays(start, end),
		"students":      reports,
	})
}
