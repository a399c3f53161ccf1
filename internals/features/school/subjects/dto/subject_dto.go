package dto

import (
	"time"

	"github.com/google/uuid"
)

// ===== Requests =====

type CreateSubjectRequest struct {
	Name        string  `json:"subject_name" validate:"required,max=120"`
	Color       string  `json:"subject_color" validate:"omitempty,max=20"`
	Description *string `json:"subject_description" validate:"omitempty,max=2000"`
}

type UpdateSubjectRequest struct {
	Name        *string `json:"subject_name" validate:"omitempty,max=120"`
	Color       *string `json:"subject_color" validate:"omitempty,max=20"`
	Description *string `json:"subject_description" validate:"omitempty,max=2000"`
}

type CreateLessonRequest struct {
	SubjectID     uuid.UUID  `json:"lesson_subject_id" validate:"required"`
	Title         string     `json:"lesson_title" validate:"required,max=200"`
	Description   *string    `json:"lesson_description" validate:"omitempty,max=5000"`
	ScheduledDate *time.Time `json:"lesson_scheduled_date" validate:"omitempty"`
}

type UpdateLessonRequest struct {
	Title         *string    `json:"lesson_title" validate:"omitempty,max=200"`
	Description   *string    `json:"lesson_description" validate:"omitempty,max=5000"`
	ScheduledDate *time.Time `json:"lesson_scheduled_date" validate:"omitempty"`
}
