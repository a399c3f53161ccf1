package dto

import (
	"github.com/google/uuid"
)

type CreateTermRequest struct {
	Name         string  `json:"term_name" validate:"required,max=120"`
	Description  *string `json:"term_description" validate:"omitempty,max=2000"`
	StartDate    string  `json:"term_start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"term_end_date" validate:"required,datetime=2006-01-02"`
	AcademicYear string  `json:"term_academic_year" validate:"required,max=20"`
	Type         string  `json:"term_type" validate:"omitempty,oneof=semester quarter trimester custom"`
	Order        *int    `json:"term_order" validate:"omitempty,min=1"`
}

type UpdateTermRequest struct {
	Name         *string `json:"term_name" validate:"omitempty,max=120"`
	Description  *string `json:"term_description" validate:"omitempty,max=2000"`
	StartDate    *string `json:"term_start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"term_end_date" validate:"omitempty,datetime=2006-01-02"`
	AcademicYear *string `json:"term_academic_year" validate:"omitempty,max=20"`
	Type         *string `json:"term_type" validate:"omitempty,oneof=semester quarter trimester custom"`
	Order        *int    `json:"term_order" validate:"omitempty,min=1"`
}

type CreateTermSubjectRequest struct {
	TermID        uuid.UUID `json:"term_subject_term_id" validate:"required"`
	SubjectID     uuid.UUID `json:"term_subject_subject_id" validate:"required"`
	Weight        *float64  `json:"term_subject_weight" validate:"omitempty,gt=0"`
	LearningGoals *string   `json:"term_subject_learning_goals" validate:"omitempty,max=5000"`
	TeacherNotes  *string   `json:"term_subject_teacher_notes" validate:"omitempty,max=5000"`
}

type UpdateTermSubjectRequest struct {
	IsActive      *bool    `json:"term_subject_is_active"`
	Weight        *float64 `json:"term_subject_weight" validate:"omitempty,gt=0"`
	LearningGoals *string  `json:"term_subject_learning_goals" validate:"omitempty,max=5000"`
	TeacherNotes  *string  `json:"term_subject_teacher_notes" validate:"omitempty,max=5000"`
}
