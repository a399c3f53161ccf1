package model

import (
	"time"

	"github.com/google/uuid"
)

// Term type values.
const (
	TermTypeSemester  = "semester"
	TermTypeQuarter   = "quarter"
	TermTypeTrimester = "trimester"
	TermTypeCustom    = "custom"
)

// TermModel represents the terms table. Which term is active is tracked
// by the terms.active_term_id system setting, not by a column here, so
// activation swaps are a single settings write.
type TermModel struct {
	TermID           uuid.UUID  `json:"term_id" gorm:"column:term_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	TermName         string     `json:"term_name" gorm:"column:term_name;size:120;not null"`
	TermDescription  *string    `json:"term_description,omitempty" gorm:"column:term_description"`
	TermStartDate    time.Time  `json:"term_start_date" gorm:"column:term_start_date;type:date;not null"`
	TermEndDate      time.Time  `json:"term_end_date" gorm:"column:term_end_date;type:date;not null"`
	TermAcademicYear string     `json:"term_academic_year" gorm:"column:term_academic_year;size:20;not null;index"`
	TermType         string     `json:"term_type" gorm:"column:term_type;size:20;not null;default:'semester'"`
	TermOrder        int        `json:"term_order" gorm:"column:term_order;not null;default:1"`
	TermCreatedBy    *uuid.UUID `json:"term_created_by,omitempty" gorm:"column:term_created_by;type:uuid"`
	TermCreatedAt    time.Time  `json:"term_created_at" gorm:"column:term_created_at;not null;autoCreateTime"`
	TermUpdatedAt    time.Time  `json:"term_updated_at" gorm:"column:term_updated_at;not null;autoUpdateTime"`
}

func (TermModel) TableName() string { return "terms" }

// Contains reports whether a date falls inside the term, inclusive on
// both ends.
func (t *TermModel) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(t.TermStartDate) && !d.After(t.TermEndDate)
}

func ValidTermType(s string) bool {
	switch s {
	case TermTypeSemester, TermTypeQuarter, TermTypeTrimester, TermTypeCustom:
		return true
	}
	return false
}
