package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ourschool_backend/internals/constants"
)

// UserModel represents the users table. A homeschool deployment has two
// roles: the parent administrator and the students.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	UserName   string    `gorm:"size:50;uniqueIndex;not null" json:"user_name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Role       string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	GradeLevel *int      `json:"grade_level,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *UserModel) IsStudent() bool {
	return u.Role == constants.RoleStudent
}
