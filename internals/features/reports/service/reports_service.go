package service

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/constants"
	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	assignmentservice "ourschool_backend/internals/features/school/assignments/service"
	attendancemodel "ourschool_backend/internals/features/school/attendance/model"
	attendanceservice "ourschool_backend/internals/features/school/attendance/service"
	termmodel "ourschool_backend/internals/features/school/terms/model"
	termservice "ourschool_backend/internals/features/school/terms/service"
	usermodel "ourschool_backend/internals/features/users/model"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrTermNotFound    = errors.New("term not found")
)

// StudentOverview is the dashboard summary for one student.
type StudentOverview struct {
	TotalAssignments      int     `json:"total_assignments"`
	CompletedAssignments  int     `json:"completed_assignments"`
	InProgressAssignments int     `json:"in_progress_assignments"`
	PendingGrades         int     `json:"pending_grades"`
	AverageGrade          float64 `json:"average_grade"`
	CurrentTermGrade      float64 `json:"current_term_grade"`
}

// BuildStudentOverview aggregates a student's assignments into the
// dashboard numbers. Averages are means of percentage grades, rounded
// to two decimals.
func BuildStudentOverview(db *gorm.DB, studentID uuid.UUID) (*StudentOverview, error) {
	var rows []assignmentmodel.StudentAssignmentModel
	if err := db.
		Where("student_assignment_student_id = ?", studentID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := &StudentOverview{TotalAssignments: len(rows)}

	var gradeSum float64
	var gradeCount int
	for i := range rows {
		switch rows[i].Status {
		case assignmentmodel.StatusGraded:
			out.CompletedAssignments++
		case assignmentmodel.StatusInProgress:
			out.InProgressAssignments++
		case assignmentmodel.StatusSubmitted:
			out.PendingGrades++
		}
		if rows[i].IsGraded && rows[i].PercentageGrade != nil {
			gradeSum += *rows[i].PercentageGrade
			gradeCount++
		}
	}
	if gradeCount > 0 {
		out.AverageGrade = round2(gradeSum / float64(gradeCount))
	}

	term, err := termservice.ActiveTerm(db)
	if err != nil {
		return nil, err
	}
	if term != nil {
		var termSum float64
		var termCount int
		for i := range rows {
			a := &rows[i]
			if !a.IsGraded || a.PercentageGrade == nil {
				continue
			}
			if a.AssignedDate.Before(term.TermStartDate) || a.AssignedDate.After(term.TermEndDate) {
				continue
			}
			termSum += *a.PercentageGrade
			termCount++
		}
		if termCount > 0 {
			out.CurrentTermGrade = round2(termSum / float64(termCount))
		}
	}
	return out, nil
}

// AdminOverview is the whole-school dashboard summary.
type AdminOverview struct {
	TotalStudents        int64   `json:"total_students"`
	ActiveAssignments    int64   `json:"active_assignments"`
	PendingGrades        int64   `json:"pending_grades"`
	TotalAssignments     int64   `json:"total_assignments"`
	CompletedAssignments int64   `json:"completed_assignments"`
	AverageGrade         float64 `json:"average_grade"`
}

func BuildAdminOverview(db *gorm.DB) (*AdminOverview, error) {
	out := &AdminOverview{}

	if err := db.Model(&usermodel.UserModel{}).
		Where("role = ?", constants.RoleStudent).
		Count(&out.TotalStudents).Error; err != nil {
		return nil, err
	}

	m := db.Model(&assignmentmodel.StudentAssignmentModel{})
	if err := m.Session(&gorm.Session{}).Count(&out.TotalAssignments).Error; err != nil {
		return nil, err
	}
	if err := m.Session(&gorm.Session{}).
		Where("status IN ?", []string{assignmentmodel.StatusInProgress, assignmentmodel.StatusSubmitted}).
		Count(&out.ActiveAssignments).Error; err != nil {
		return nil, err
	}
	if err := m.Session(&gorm.Session{}).
		Where("status = ?", assignmentmodel.StatusSubmitted).
		Count(&out.PendingGrades).Error; err != nil {
		return nil, err
	}
	if err := m.Session(&gorm.Session{}).
		Where("status = ?", assignmentmodel.StatusGraded).
		Count(&out.CompletedAssignments).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := db.Model(&assignmentmodel.StudentAssignmentModel{}).
		Select("AVG(percentage_grade)").
		Where("is_graded = ? AND percentage_grade IS NOT NULL", true).
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		out.AverageGrade = round2(*avg)
	}
	return out, nil
}

// SubjectGrade is one subject line on a report card.
type SubjectGrade struct {
	SubjectID            uuid.UUID `json:"subject_id"`
	SubjectName          string    `json:"subject_name"`
	SubjectColor         string    `json:"subject_color"`
	AssignmentsCompleted int       `json:"assignments_completed"`
	AssignmentsTotal     int       `json:"assignments_total"`
	PointsEarned         float64   `json:"points_earned"`
	PointsPossible       float64   `json:"points_possible"`
	PercentageGrade      float64   `json:"percentage_grade"`
	LetterGrade          string    `json:"letter_grade"`
}

// ReportCard is the full per-term document for one student.
type ReportCard struct {
	StudentID      uuid.UUID               `json:"student_id"`
	StudentName    string                  `json:"student_name"`
	GradeLevel     *int                    `json:"grade_level,omitempty"`
	TermID         uuid.UUID               `json:"term_id"`
	TermName       string                  `json:"term_name"`
	AcademicYear   string                  `json:"academic_year"`
	Subjects       []SubjectGrade          `json:"subjects"`
	OverallPercent float64                 `json:"overall_percentage"`
	OverallLetter  string                  `json:"overall_letter_grade"`
	Attendance     attendanceservice.Stats `json:"attendance"`
	DaysRecorded   int                     `json:"days_recorded"`
	AttendanceRate *float64                `json:"attendance_rate,omitempty"`
	SchoolDays     int                     `json:"school_days"`
}

// BuildReportCard groups the student's term assignments by subject and
// attaches the term's attendance picture.
func BuildReportCard(db *gorm.DB, studentID, termID uuid.UUID) (*ReportCard, error) {
	var student usermodel.UserModel
	if err := db.First(&student, "id = ? AND role = ?", studentID, constants.RoleStudent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	var term termmodel.TermModel
	if err := db.First(&term, "term_id = ?", termID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}

	var rows []assignmentmodel.StudentAssignmentModel
	if err := db.
		Preload("Template").Preload("Template.Subject").
		Where("student_assignment_student_id = ?", studentID).
		Where("assigned_date >= ? AND assigned_date <= ?", term.TermStartDate, term.TermEndDate).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	bySubject := map[uuid.UUID]*SubjectGrade{}
	var order []uuid.UUID
	var totalEarned, totalPossible float64

	for i := range rows {
		a := &rows[i]
		if a.Template == nil || a.Template.Subject == nil {
			continue
		}
		subj := a.Template.Subject
		sg, ok := bySubject[subj.SubjectID]
		if !ok {
			sg = &SubjectGrade{
				SubjectID:    subj.SubjectID,
				SubjectName:  subj.SubjectName,
				SubjectColor: subj.SubjectColor,
			}
			bySubject[subj.SubjectID] = sg
			order = append(order, subj.SubjectID)
		}

		maxPoints := a.EffectiveMaxPoints()
		sg.AssignmentsTotal++
		sg.PointsPossible += maxPoints
		totalPossible += maxPoints

		if a.IsGraded && a.PointsEarned != nil {
			sg.PointsEarned += *a.PointsEarned
			sg.AssignmentsCompleted++
			totalEarned += *a.PointsEarned
		}
	}

	subjects := make([]SubjectGrade, 0, len(order))
	for _, id := range order {
		sg := bySubject[id]
		if pct, ok := assignmentservice.Percentage(sg.PointsEarned, sg.PointsPossible); ok {
			sg.PercentageGrade = round2(pct)
		}
		sg.LetterGrade = assignmentservice.LetterGrade(sg.PercentageGrade)
		subjects = append(subjects, *sg)
	}

	card := &ReportCard{
		StudentID:    studentID,
		StudentName:  student.FullName(),
		GradeLevel:   student.GradeLevel,
		TermID:       termID,
		TermName:     term.TermName,
		AcademicYear: term.TermAcademicYear,
		Subjects:     subjects,
	}
	if pct, ok := assignmentservice.Percentage(totalEarned, totalPossible); ok {
		card.OverallPercent = round2(pct)
	}
	card.OverallLetter = assignmentservice.LetterGrade(card.OverallPercent)

	var attendance []attendancemodel.AttendanceRecordModel
	if err := db.
		Where("attendance_student_id = ?", studentID).
		Where("attendance_date >= ? AND attendance_date <= ?", term.TermStartDate, term.TermEndDate).
		Find(&attendance).Error; err != nil {
		return nil, err
	}
	card.Attendance = attendanceservice.Statistics(attendance)
	card.DaysRecorded = len(attendance)
	// The report card rate is acceptable days over days actually on
	// file, nil when nothing was recorded. The weekday count of the
	// term window is an informational total only.
	card.SchoolDays = attendanceservice.SchoolDays(term.TermStartDate, term.TermEndDate)
	if card.DaysRecorded > 0 {
		acceptable := card.Attendance.PresentDays + card.Attendance.LateDays + card.Attendance.ExcusedDays
		rate := round2(float64(acceptable) / float64(card.DaysRecorded) * 100)
		card.AttendanceRate = &rate
	}

	return card, nil
}

// AcademicYear is a distinct school year with its date bounds.
type AcademicYear struct {
	AcademicYear string `json:"academic_year"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TermCount    int    `json:"term_count"`
}

func ListAcademicYears(db *gorm.DB) ([]AcademicYear, error) {
	var out []AcademicYear
	err := db.Model(&termmodel.TermModel{}).
		Select("term_academic_year AS academic_year, MIN(term_start_date) AS start_date, MAX(term_end_date) AS end_date, COUNT(*) AS term_count").
		Group("term_academic_year").
		Order("MIN(term_start_date) DESC").
		Scan(&out).Error
	return out, err
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
