package model

import (
	"time"

	"github.com/google/uuid"
)

// SubjectModel represents the subjects table.
type SubjectModel struct {
	SubjectID          uuid.UUID `json:"subject_id" gorm:"column:subject_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	SubjectName        string    `json:"subject_name" gorm:"column:subject_name;size:120;not null;uniqueIndex"`
	SubjectColor       string    `json:"subject_color" gorm:"column:subject_color;size:20"`
	SubjectDescription *string   `json:"subject_description,omitempty" gorm:"column:subject_description"`
	SubjectCreatedAt   time.Time `json:"subject_created_at" gorm:"column:subject_created_at;not null;autoCreateTime"`
	SubjectUpdatedAt   time.Time `json:"subject_updated_at" gorm:"column:subject_updated_at;not null;autoUpdateTime"`
}

func (SubjectModel) TableName() string { return "subjects" }
