package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "ourschool_backend/internals/features/users/model"
)

// Attendance status values.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

func ValidAttendanceStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// AttendanceRecordModel is one student's status for one school day. The
// composite unique index makes a day idempotent per student.
type AttendanceRecordModel struct {
	AttendanceID        uuid.UUID `json:"attendance_id" gorm:"column:attendance_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	AttendanceStudentID uuid.UUID `json:"attendance_student_id" gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_date"`
	AttendanceDate      time.Time `json:"attendance_date" gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_student_date"`
	AttendanceStatus    string    `json:"attendance_status" gorm:"column:attendance_status;size:10;not null"`
	AttendanceNotes     *string   `json:"attendance_notes,omitempty" gorm:"column:attendance_notes"`

	AttendanceRecordedBy *uuid.UUID `json:"attendance_recorded_by,omitempty" gorm:"column:attendance_recorded_by;type:uuid"`
	AttendanceCreatedAt  time.Time  `json:"attendance_created_at" gorm:"column:attendance_created_at;not null;autoCreateTime"`
	AttendanceUpdatedAt  time.Time  `json:"attendance_updated_at" gorm:"column:attendance_updated_at;not null;autoUpdateTime"`

	Student *usermodel.UserModel `json:"student,omitempty" gorm:"foreignKey:AttendanceStudentID;references:ID"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
