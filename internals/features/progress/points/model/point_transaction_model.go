package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction type values. Positive amounts earn, negative spend or
// deduct; the type records intent for the ledger view.
const (
	TransactionTypeAssignment     = "assignment"
	TransactionTypeAdminAward     = "admin_award"
	TransactionTypeAdminDeduction = "admin_deduction"
	TransactionTypeSpending       = "spending"
)

func ValidTransactionType(s string) bool {
	switch s {
	case TransactionTypeAssignment, TransactionTypeAdminAward,
		TransactionTypeAdminDeduction, TransactionTypeSpending:
		return true
	}
	return false
}

// PointTransactionModel is the append-only points ledger. Rows are never
// updated or deleted; corrections are new compensating rows.
type PointTransactionModel struct {
	PointTransactionID        uuid.UUID `json:"point_transaction_id" gorm:"column:point_transaction_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	PointTransactionStudentID uuid.UUID `json:"point_transaction_student_id" gorm:"column:point_transaction_student_id;type:uuid;not null;index"`

	Amount      float64 `json:"amount" gorm:"column:amount;type:numeric(10,2);not null"`
	Type        string  `json:"type" gorm:"column:type;size:20;not null;index"`
	Description string  `json:"description" gorm:"column:description;size:500;not null"`

	SourceAssignmentID *uuid.UUID `json:"source_assignment_id,omitempty" gorm:"column:source_assignment_id;type:uuid;index"`
	CreatedBy          *uuid.UUID `json:"created_by,omitempty" gorm:"column:created_by;type:uuid"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at;not null;autoCreateTime;index"`
}

func (PointTransactionModel) TableName() string { return "point_transactions" }
