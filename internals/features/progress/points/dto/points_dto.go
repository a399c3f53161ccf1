package dto

import "github.com/google/uuid"

type AdjustPointsRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Amount    float64   `json:"amount" validate:"required"`
	Reason    string    `json:"reason" validate:"required,max=500"`
}

type SpendPointsRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=500"`
}

type TogglePointsRequest struct {
	Enabled bool `json:"enabled"`
}
