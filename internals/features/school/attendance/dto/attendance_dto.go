package dto

import "github.com/google/uuid"

type CreateAttendanceRequest struct {
	StudentID uuid.UUID `json:"attendance_student_id" validate:"required"`
	Date      string    `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Status    string    `json:"attendance_status" validate:"required,oneof=present absent late excused"`
	Notes     *string   `json:"attendance_notes" validate:"omitempty,max=2000"`
}

type BulkAttendanceRequest struct {
	Date    string                `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Entries []BulkAttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

type BulkAttendanceEntry struct {
	StudentID uuid.UUID `json:"attendance_student_id" validate:"required"`
	Status    string    `json:"attendance_status" validate:"required,oneof=present absent late excused"`
	Notes     *string   `json:"attendance_notes" validate:"omitempty,max=2000"`
}

type UpdateAttendanceRequest struct {
	Status *string `json:"attendance_status" validate:"omitempty,oneof=present absent late excused"`
	Notes  *string `json:"attendance_notes" validate:"omitempty,max=2000"`
}
