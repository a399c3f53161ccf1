package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "ourschool_backend/internals/features/users/model"
)

// StudentTermGradeModel is the per-student aggregate for one term
// subject. Current values are recomputed from scratch on every graded
// assignment; final values are frozen copies written at finalization.
type StudentTermGradeModel struct {
	StudentTermGradeID            uuid.UUID `json:"student_term_grade_id" gorm:"column:student_term_grade_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	StudentTermGradeStudentID     uuid.UUID `json:"student_term_grade_student_id" gorm:"column:student_term_grade_student_id;type:uuid;not null;uniqueIndex:uq_student_term_grade"`
	StudentTermGradeTermSubjectID uuid.UUID `json:"student_term_grade_term_subject_id" gorm:"column:student_term_grade_term_subject_id;type:uuid;not null;uniqueIndex:uq_student_term_grade"`

	CurrentPointsEarned    float64  `json:"current_points_earned" gorm:"column:current_points_earned;type:numeric(10,2);not null;default:0"`
	CurrentPointsPossible  float64  `json:"current_points_possible" gorm:"column:current_points_possible;type:numeric(10,2);not null;default:0"`
	CurrentGradePercentage *float64 `json:"current_grade_percentage,omitempty" gorm:"column:current_grade_percentage;type:numeric(5,2)"`
	CurrentLetterGrade     *string  `json:"current_letter_grade,omitempty" gorm:"column:current_letter_grade;size:2"`

	FinalPointsEarned    *float64 `json:"final_points_earned,omitempty" gorm:"column:final_points_earned;type:numeric(10,2)"`
	FinalPointsPossible  *float64 `json:"final_points_possible,omitempty" gorm:"column:final_points_possible;type:numeric(10,2)"`
	FinalGradePercentage *float64 `json:"final_grade_percentage,omitempty" gorm:"column:final_grade_percentage;type:numeric(5,2)"`
	FinalLetterGrade     *string  `json:"final_letter_grade,omitempty" gorm:"column:final_letter_grade;size:2"`

	IsFinalized   bool       `json:"is_finalized" gorm:"column:is_finalized;not null;default:false"`
	FinalizedDate *time.Time `json:"finalized_date,omitempty" gorm:"column:finalized_date"`
	FinalizedBy   *uuid.UUID `json:"finalized_by,omitempty" gorm:"column:finalized_by;type:uuid"`

	AssignmentsCompleted int        `json:"assignments_completed" gorm:"column:assignments_completed;not null;default:0"`
	AssignmentsTotal     int        `json:"assignments_total" gorm:"column:assignments_total;not null;default:0"`
	LastCalculated       *time.Time `json:"last_calculated,omitempty" gorm:"column:last_calculated"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	Student     *usermodel.UserModel `json:"student,omitempty" gorm:"foreignKey:StudentTermGradeStudentID;references:ID"`
	TermSubject *TermSubjectModel    `json:"term_subject,omitempty" gorm:"foreignKey:StudentTermGradeTermSubjectID;references:TermSubjectID"`
}

func (StudentTermGradeModel) TableName() string { return "student_term_grades" }
