package dto

import "github.com/google/uuid"

// ===== Requests =====

// CreateJournalEntryRequest: student_id is required for admins (who may
// write about any student) and ignored for students, who always write
// about themselves.
type CreateJournalEntryRequest struct {
	StudentID *uuid.UUID `json:"student_id" validate:"omitempty"`
	Title     string     `json:"title" validate:"required,max=200"`
	Content   string     `json:"content" validate:"required"`
	EntryDate *string    `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateJournalEntryRequest is partial: only non-nil fields are applied.
type UpdateJournalEntryRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=200"`
	Content   *string `json:"content" validate:"omitempty"`
	EntryDate *string `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
}
