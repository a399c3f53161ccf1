package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	attendancemodel "ourschool_backend/internals/features/school/attendance/model"
)

// ActivityItem is one row on the recent-activity feed.
type ActivityItem struct {
	ActivityType string                 `json:"activity_type"`
	Description  string                 `json:"description"`
	Timestamp    time.Time              `json:"timestamp"`
	StudentName  string                 `json:"student_name,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// BuildRecentActivity assembles assignment submissions, gradings, and
// attendance recordings from the last `days` days, newest first. A
// non-nil studentID scopes the feed to that student.
func BuildRecentActivity(db *gorm.DB, studentID uuid.UUID, limit, days int) ([]ActivityItem, error) {
	since := time.Now().AddDate(0, 0, -days)
	items := []ActivityItem{}

	q := db.Preload("Template").Preload("Student").
		Where("updated_at >= ?", since).
		Order("updated_at DESC").
		Limit(50)
	if studentID != uuid.Nil {
		q = q.Where("student_assignment_student_id = ?", studentID)
	}
	var assignments []assignmentmodel.StudentAssignmentModel
	if err := q.Find(&assignments).Error; err != nil {
		return nil, err
	}

	for i := range assignments {
		a := &assignments[i]
		name := "Unknown assignment"
		if a.Template != nil {
			name = a.Template.AssignmentTemplateName
		}
		studentName := ""
		if a.Student != nil {
			studentName = a.Student.FullName()
		}

		if a.SubmittedDate != nil && !a.SubmittedDate.Before(since) {
			items = append(items, ActivityItem{
				ActivityType: "assignment_submitted",
				Description:  fmt.Sprintf("Assignment %q submitted", name),
				Timestamp:    *a.SubmittedDate,
				StudentName:  studentName,
				Details:      map[string]interface{}{"assignment_id": a.StudentAssignmentID},
			})
		}
		if a.IsGraded && a.GradedDate != nil && !a.GradedDate.Before(since) {
			desc := fmt.Sprintf("Assignment %q graded", name)
			details := map[string]interface{}{"assignment_id": a.StudentAssignmentID}
			if a.PercentageGrade != nil {
				desc = fmt.Sprintf("Assignment %q graded (%.1f%%)", name, *a.PercentageGrade)
				details["grade"] = *a.PercentageGrade
			}
			items = append(items, ActivityItem{
				ActivityType: "assignment_graded",
				Description:  desc,
				Timestamp:    *a.GradedDate,
				StudentName:  studentName,
				Details:      details,
			})
		}
	}

	aq := db.Preload("Student").
		Where("attendance_created_at >= ?", since).
		Order("attendance_created_at DESC").
		Limit(50)
	if studentID != uuid.Nil {
		aq = aq.Where("attendance_student_id = ?", studentID)
	}
	var records []attendancemodel.AttendanceRecordModel
	if err := aq.Find(&records).Error; err != nil {
		return nil, err
	}

	for i := range records {
		r := &records[i]
		studentName := ""
		if r.Student != nil {
			studentName = r.Student.FullName()
		}
		items = append(items, ActivityItem{
			ActivityType: "attendance_recorded",
			Description:  fmt.Sprintf("Marked %s on %s", r.AttendanceStatus, r.AttendanceDate.Format("01/02")),
			Timestamp:    r.AttendanceCreatedAt,
			StudentName:  studentName,
			Details:      map[string]interface{}{"status": r.AttendanceStatus},
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
