package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	usermodel "ourschool_backend/internals/features/users/model"
)

// Assignment status values, in lifecycle order.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusGraded     = "graded"
	StatusOverdue    = "overdue"
	StatusExcused    = "excused"
)

func ValidAssignmentStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusSubmitted,
		StatusGraded, StatusOverdue, StatusExcused:
		return true
	}
	return false
}

// StudentAssignmentModel is one student's instance of a template. It
// carries the grade, the lifecycle dates, and per-student overrides.
type StudentAssignmentModel struct {
	StudentAssignmentID         uuid.UUID `json:"student_assignment_id" gorm:"column:student_assignment_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	StudentAssignmentTemplateID uuid.UUID `json:"student_assignment_template_id" gorm:"column:student_assignment_template_id;type:uuid;not null;index"`
	StudentAssignmentStudentID  uuid.UUID `json:"student_assignment_student_id" gorm:"column:student_assignment_student_id;type:uuid;not null;index"`

	AssignedDate    time.Time  `json:"assigned_date" gorm:"column:assigned_date;type:date;not null"`
	DueDate         *time.Time `json:"due_date,omitempty" gorm:"column:due_date;type:date"`
	ExtendedDueDate *time.Time `json:"extended_due_date,omitempty" gorm:"column:extended_due_date;type:date"`

	Status        string     `json:"status" gorm:"column:status;size:20;not null;default:'not_started';index"`
	StartedDate   *time.Time `json:"started_date,omitempty" gorm:"column:started_date;type:date"`
	SubmittedDate *time.Time `json:"submitted_date,omitempty" gorm:"column:submitted_date;type:date"`
	CompletedDate *time.Time `json:"completed_date,omitempty" gorm:"column:completed_date;type:date"`

	PointsEarned    *float64   `json:"points_earned,omitempty" gorm:"column:points_earned;type:numeric(10,2)"`
	PercentageGrade *float64   `json:"percentage_grade,omitempty" gorm:"column:percentage_grade;type:numeric(5,2)"`
	LetterGrade     *string    `json:"letter_grade,omitempty" gorm:"column:letter_grade;size:2"`
	IsGraded        bool       `json:"is_graded" gorm:"column:is_graded;not null;default:false"`
	GradedDate      *time.Time `json:"graded_date,omitempty" gorm:"column:graded_date;type:date"`
	GradedBy        *uuid.UUID `json:"graded_by,omitempty" gorm:"column:graded_by;type:uuid"`

	TeacherFeedback     *string        `json:"teacher_feedback,omitempty" gorm:"column:teacher_feedback"`
	StudentNotes        *string        `json:"student_notes,omitempty" gorm:"column:student_notes"`
	SubmissionNotes     *string        `json:"submission_notes,omitempty" gorm:"column:submission_notes"`
	SubmissionArtifacts datatypes.JSON `json:"submission_artifacts,omitempty" gorm:"column:submission_artifacts;type:jsonb"`

	TimeSpentMinutes int `json:"time_spent_minutes" gorm:"column:time_spent_minutes;not null;default:0"`

	CustomInstructions *string  `json:"custom_instructions,omitempty" gorm:"column:custom_instructions"`
	CustomMaxPoints    *float64 `json:"custom_max_points,omitempty" gorm:"column:custom_max_points;type:numeric(10,2)"`

	AssignedBy *uuid.UUID `json:"assigned_by,omitempty" gorm:"column:assigned_by;type:uuid"`
	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	Template *AssignmentTemplateModel `json:"template,omitempty" gorm:"foreignKey:StudentAssignmentTemplateID;references:AssignmentTemplateID"`
	Student  *usermodel.UserModel     `json:"student,omitempty" gorm:"foreignKey:StudentAssignmentStudentID;references:ID"`
}

func (StudentAssignmentModel) TableName() string { return "student_assignments" }

// EffectiveMaxPoints resolves the per-student override against the
// template default. Template must be preloaded when the override is nil.
func (a *StudentAssignmentModel) EffectiveMaxPoints() float64 {
	if a.CustomMaxPoints != nil && *a.CustomMaxPoints > 0 {
		return *a.CustomMaxPoints
	}
	if a.Template != nil {
		return a.Template.AssignmentTemplateMaxPoints
	}
	return 0
}

// EffectiveDueDate prefers the extension when one was granted.
func (a *StudentAssignmentModel) EffectiveDueDate() *time.Time {
	if a.ExtendedDueDate != nil {
		return a.ExtendedDueDate
	}
	return a.DueDate
}
