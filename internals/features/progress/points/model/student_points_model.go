package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "ourschool_backend/internals/features/users/model"
)

// StudentPointsModel is one student's running balance. It is derived
// state: every change goes through a PointTransactionModel row first.
type StudentPointsModel struct {
	StudentPointsID        uuid.UUID `json:"student_points_id" gorm:"column:student_points_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	StudentPointsStudentID uuid.UUID `json:"student_points_student_id" gorm:"column:student_points_student_id;type:uuid;not null;uniqueIndex"`

	CurrentBalance float64 `json:"current_balance" gorm:"column:current_balance;type:numeric(10,2);not null;default:0"`
	TotalEarned    float64 `json:"total_earned" gorm:"column:total_earned;type:numeric(10,2);not null;default:0"`
	TotalSpent     float64 `json:"total_spent" gorm:"column:total_spent;type:numeric(10,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`

	Student *usermodel.UserModel `json:"student,omitempty" gorm:"foreignKey:StudentPointsStudentID;references:ID"`
}

func (StudentPointsModel) TableName() string { return "student_points" }
