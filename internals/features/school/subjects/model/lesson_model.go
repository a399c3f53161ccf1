package model

import (
	"time"

	"github.com/google/uuid"
)

// LessonModel represents the lessons table. Lessons group assignment
// templates under a subject for a scheduled teaching day.
type LessonModel struct {
	LessonID            uuid.UUID  `json:"lesson_id" gorm:"column:lesson_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	LessonSubjectID     uuid.UUID  `json:"lesson_subject_id" gorm:"column:lesson_subject_id;type:uuid;not null;index"`
	LessonTitle         string     `json:"lesson_title" gorm:"column:lesson_title;size:200;not null"`
	LessonDescription   *string    `json:"lesson_description,omitempty" gorm:"column:lesson_description"`
	LessonScheduledDate *time.Time `json:"lesson_scheduled_date,omitempty" gorm:"column:lesson_scheduled_date;type:date"`
	LessonCreatedAt     time.Time  `json:"lesson_created_at" gorm:"column:lesson_created_at;not null;autoCreateTime"`
	LessonUpdatedAt     time.Time  `json:"lesson_updated_at" gorm:"column:lesson_updated_at;not null;autoUpdateTime"`

	Subject *SubjectModel `json:"subject,omitempty" gorm:"foreignKey:LessonSubjectID;references:SubjectID"`
}

func (LessonModel) TableName() string { return "lessons" }
