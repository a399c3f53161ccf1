package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ===== Templates =====

type CreateTemplateRequest struct {
	Name             string     `json:"assignment_template_name" validate:"required,max=200"`
	Description      *string    `json:"assignment_template_description" validate:"omitempty,max=5000"`
	Instructions     *string    `json:"assignment_template_instructions" validate:"omitempty,max=10000"`
	Type             string     `json:"assignment_template_type" validate:"omitempty,oneof=homework project test quiz essay presentation worksheet reading practice"`
	SubjectID        uuid.UUID  `json:"assignment_template_subject_id" validate:"required"`
	LessonID         *uuid.UUID `json:"assignment_template_lesson_id"`
	MaxPoints        *float64   `json:"assignment_template_max_points" validate:"omitempty,gt=0"`
	EstimatedMinutes *int       `json:"assignment_template_estimated_minutes" validate:"omitempty,min=1"`
	Prerequisites    *string    `json:"assignment_template_prerequisites" validate:"omitempty,max=5000"`
	MaterialsNeeded  *string    `json:"assignment_template_materials_needed" validate:"omitempty,max=5000"`
	OrderInLesson    *int       `json:"assignment_template_order_in_lesson" validate:"omitempty,min=0"`
}

type UpdateTemplateRequest struct {
	Name             *string  `json:"assignment_template_name" validate:"omitempty,max=200"`
	Description      *string  `json:"assignment_template_description" validate:"omitempty,max=5000"`
	Instructions     *string  `json:"assignment_template_instructions" validate:"omitempty,max=10000"`
	Type             *string  `json:"assignment_template_type" validate:"omitempty,oneof=homework project test quiz essay presentation worksheet reading practice"`
	MaxPoints        *float64 `json:"assignment_template_max_points" validate:"omitempty,gt=0"`
	EstimatedMinutes *int     `json:"assignment_template_estimated_minutes" validate:"omitempty,min=1"`
	Prerequisites    *string  `json:"assignment_template_prerequisites" validate:"omitempty,max=5000"`
	MaterialsNeeded  *string  `json:"assignment_template_materials_needed" validate:"omitempty,max=5000"`
	OrderInLesson    *int     `json:"assignment_template_order_in_lesson" validate:"omitempty,min=0"`
	IsArchived       *bool    `json:"assignment_template_is_archived"`
}

// ===== Student assignments =====

type AssignToStudentsRequest struct {
	TemplateID         uuid.UUID   `json:"template_id" validate:"required"`
	StudentIDs         []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
	AssignedDate       *string     `json:"assigned_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate            *string     `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	CustomInstructions *string     `json:"custom_instructions" validate:"omitempty,max=10000"`
	CustomMaxPoints    *float64    `json:"custom_max_points" validate:"omitempty,gt=0"`
}

type UpdateStudentAssignmentRequest struct {
	DueDate            *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	ExtendedDueDate    *string  `json:"extended_due_date" validate:"omitempty,datetime=2006-01-02"`
	Status             *string  `json:"status" validate:"omitempty,oneof=not_started in_progress submitted graded overdue excused"`
	TeacherFeedback    *string  `json:"teacher_feedback" validate:"omitempty,max=10000"`
	StudentNotes       *string  `json:"student_notes" validate:"omitempty,max=10000"`
	CustomInstructions *string  `json:"custom_instructions" validate:"omitempty,max=10000"`
	CustomMaxPoints    *float64 `json:"custom_max_points" validate:"omitempty,gt=0"`
	TimeSpentMinutes   *int     `json:"time_spent_minutes" validate:"omitempty,min=0"`
}

type SubmitAssignmentRequest struct {
	SubmissionNotes     *string        `json:"submission_notes" validate:"omitempty,max=10000"`
	SubmissionArtifacts datatypes.JSON `json:"submission_artifacts"`
	TimeSpentMinutes    *int           `json:"time_spent_minutes" validate:"omitempty,min=0"`
}

type GradeAssignmentRequest struct {
	PointsEarned    float64 `json:"points_earned" validate:"min=0"`
	TeacherFeedback *string `json:"teacher_feedback" validate:"omitempty,max=10000"`
}
