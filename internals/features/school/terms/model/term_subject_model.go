package model

import (
	"time"

	"github.com/google/uuid"

	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
)

// TermSubjectModel links a subject into a term. Grade aggregation only
// happens for subjects linked to the active term.
type TermSubjectModel struct {
	TermSubjectID            uuid.UUID `json:"term_subject_id" gorm:"column:term_subject_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	TermSubjectTermID        uuid.UUID `json:"term_subject_term_id" gorm:"column:term_subject_term_id;type:uuid;not null;uniqueIndex:uq_term_subject"`
	TermSubjectSubjectID     uuid.UUID `json:"term_subject_subject_id" gorm:"column:term_subject_subject_id;type:uuid;not null;uniqueIndex:uq_term_subject"`
	TermSubjectIsActive      bool      `json:"term_subject_is_active" gorm:"column:term_subject_is_active;not null;default:true"`
	TermSubjectWeight        float64   `json:"term_subject_weight" gorm:"column:term_subject_weight;type:numeric(5,2);not null;default:1.0"`
	TermSubjectLearningGoals *string   `json:"term_subject_learning_goals,omitempty" gorm:"column:term_subject_learning_goals"`
	TermSubjectTeacherNotes  *string   `json:"term_subject_teacher_notes,omitempty" gorm:"column:term_subject_teacher_notes"`
	TermSubjectCreatedAt     time.Time `json:"term_subject_created_at" gorm:"column:term_subject_created_at;not null;autoCreateTime"`
	TermSubjectUpdatedAt     time.Time `json:"term_subject_updated_at" gorm:"column:term_subject_updated_at;not null;autoUpdateTime"`

	Term    *TermModel                 `json:"term,omitempty" gorm:"foreignKey:TermSubjectTermID;references:TermID"`
	Subject *subjectmodel.SubjectModel `json:"subject,omitempty" gorm:"foreignKey:TermSubjectSubjectID;references:SubjectID"`
}

func (TermSubjectModel) TableName() string { return "term_subjects" }
