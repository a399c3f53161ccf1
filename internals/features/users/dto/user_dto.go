package dto

import (
	"time"

	"github.com/google/uuid"
)

// ===== Requests =====

type RegisterRequest struct {
	UserName   string `json:"user_name" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Role       string `json:"role" validate:"required,oneof=admin student"`
	GradeLevel *int   `json:"grade_level" validate:"omitempty,min=0,max=12"`
}

type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is partial: only non-nil fields are applied.
type UpdateUserRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	FirstName  *string `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,max=100"`
	GradeLevel *int    `json:"grade_level" validate:"omitempty,min=0,max=12"`
	IsActive   *bool   `json:"is_active" validate:"omitempty"`
}

// ===== Responses =====

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"user_name"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	GradeLevel *int      `json:"grade_level,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
