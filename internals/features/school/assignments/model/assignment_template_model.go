package model

import (
	"time"

	"github.com/google/uuid"

	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
)

// Assignment type values.
const (
	AssignmentTypeHomework     = "homework"
	AssignmentTypeProject      = "project"
	AssignmentTypeTest         = "test"
	AssignmentTypeQuiz         = "quiz"
	AssignmentTypeEssay        = "essay"
	AssignmentTypePresentation = "presentation"
	AssignmentTypeWorksheet    = "worksheet"
	AssignmentTypeReading      = "reading"
	AssignmentTypePractice     = "practice"
)

func ValidAssignmentType(s string) bool {
	switch s {
	case AssignmentTypeHomework, AssignmentTypeProject, AssignmentTypeTest,
		AssignmentTypeQuiz, AssignmentTypeEssay, AssignmentTypePresentation,
		AssignmentTypeWorksheet, AssignmentTypeReading, AssignmentTypePractice:
		return true
	}
	return false
}

// AssignmentTemplateModel is a reusable assignment blueprint. Assigning
// it to students creates StudentAssignmentModel instances.
type AssignmentTemplateModel struct {
	AssignmentTemplateID           uuid.UUID  `json:"assignment_template_id" gorm:"column:assignment_template_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	AssignmentTemplateName         string     `json:"assignment_template_name" gorm:"column:assignment_template_name;size:200;not null"`
	AssignmentTemplateDescription  *string    `json:"assignment_template_description,omitempty" gorm:"column:assignment_template_description"`
	AssignmentTemplateInstructions *string    `json:"assignment_template_instructions,omitempty" gorm:"column:assignment_template_instructions"`
	AssignmentTemplateType         string     `json:"assignment_template_type" gorm:"column:assignment_template_type;size:20;not null;default:'homework'"`
	AssignmentTemplateSubjectID    uuid.UUID  `json:"assignment_template_subject_id" gorm:"column:assignment_template_subject_id;type:uuid;not null;index"`
	AssignmentTemplateLessonID     *uuid.UUID `json:"assignment_template_lesson_id,omitempty" gorm:"column:assignment_template_lesson_id;type:uuid;index"`

	AssignmentTemplateMaxPoints        float64 `json:"assignment_template_max_points" gorm:"column:assignment_template_max_points;type:numeric(10,2);not null;default:100"`
	AssignmentTemplateEstimatedMinutes *int    `json:"assignment_template_estimated_minutes,omitempty" gorm:"column:assignment_template_estimated_minutes"`
	AssignmentTemplatePrerequisites    *string `json:"assignment_template_prerequisites,omitempty" gorm:"column:assignment_template_prerequisites"`
	AssignmentTemplateMaterialsNeeded  *string `json:"assignment_template_materials_needed,omitempty" gorm:"column:assignment_template_materials_needed"`
	AssignmentTemplateOrderInLesson    int     `json:"assignment_template_order_in_lesson" gorm:"column:assignment_template_order_in_lesson;not null;default:0"`
	AssignmentTemplateIsArchived       bool    `json:"assignment_template_is_archived" gorm:"column:assignment_template_is_archived;not null;default:false"`

	AssignmentTemplateCreatedBy *uuid.UUID `json:"assignment_template_created_by,omitempty" gorm:"column:assignment_template_created_by;type:uuid"`
	AssignmentTemplateCreatedAt time.Time  `json:"assignment_template_created_at" gorm:"column:assignment_template_created_at;not null;autoCreateTime"`
	AssignmentTemplateUpdatedAt time.Time  `json:"assignment_template_updated_at" gorm:"column:assignment_template_updated_at;not null;autoUpdateTime"`

	Subject *subjectmodel.SubjectModel `json:"subject,omitempty" gorm:"foreignKey:AssignmentTemplateSubjectID;references:SubjectID"`
	Lesson  *subjectmodel.LessonModel  `json:"lesson,omitempty" gorm:"foreignKey:AssignmentTemplateLessonID;references:LessonID"`
}

func (AssignmentTemplateModel) TableName() string { return "assignment_templates" }
