package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	"ourschool_backend/internals/features/progress/points/model"
	settingsservice "ourschool_backend/internals/features/system/settings/service"
)

var (
	ErrPointsDisabled      = errors.New("points system is disabled")
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrZeroAmount          = errors.New("transaction amount must be non-zero")
	ErrInvalidType         = errors.New("invalid transaction type")
)

// IsPointsSystemEnabled reads the points.system_enabled setting.
// Defaults to false when unset.
func IsPointsSystemEnabled(db *gorm.DB) (bool, error) {
	return settingsservice.GetBool(db, settingsservice.KeyPointsSystemEnabled, false)
}

// GetOrCreateStudentPoints returns the balance row for a student,
// creating a zeroed one on first touch.
func GetOrCreateStudentPoints(tx *gorm.DB, studentID uuid.UUID) (*model.StudentPointsModel, error) {
	var row model.StudentPointsModel
	err := tx.First(&row, "student_points_student_id = ?", studentID).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = model.StudentPointsModel{
		StudentPointsID:        uuid.New(),
		StudentPointsStudentID: studentID,
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreatePointTransaction appends a ledger row and moves the balance in
// the same transaction. The balance update is incremental SQL so the
// invariant balance == sum(ledger) holds under concurrent writers.
func CreatePointTransaction(
	db *gorm.DB,
	studentID uuid.UUID,
	amount float64,
	txType string,
	description string,
	sourceAssignmentID *uuid.UUID,
	createdBy *uuid.UUID,
) (*model.PointTransactionModel, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if !model.ValidTransactionType(txType) {
		return nil, ErrInvalidType
	}

	row := model.PointTransactionModel{
		PointTransactionID:        uuid.New(),
		PointTransactionStudentID: studentID,
		Amount:                    amount,
		Type:                      txType,
		Description:               description,
		SourceAssignmentID:        sourceAssignmentID,
		CreatedBy:                 createdBy,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		balance, err := GetOrCreateStudentPoints(tx, studentID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"current_balance": gorm.Expr("current_balance + ?", amount),
		}
		if amount > 0 {
			updates["total_earned"] = gorm.Expr("total_earned + ?", amount)
		} else {
			updates["total_spent"] = gorm.Expr("total_spent + ?", -amount)
		}
		return tx.Model(&model.StudentPointsModel{}).
			Where("student_points_id = ?", balance.StudentPointsID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AwardAssignmentPoints credits points for a graded assignment. No-op
// when the points system is disabled or nothing was earned. The
// assignment's template must be preloaded for the ledger description.
func AwardAssignmentPoints(db *gorm.DB, a *assignmentmodel.StudentAssignmentModel) error {
	enabled, err := IsPointsSystemEnabled(db)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}
	if a.PointsEarned == nil || *a.PointsEarned <= 0 {
		return nil
	}

	name := "assignment"
	if a.Template != nil {
		name = a.Template.AssignmentTemplateName
	}
	assignmentID := a.StudentAssignmentID
	_, err = CreatePointTransaction(
		db,
		a.StudentAssignmentStudentID,
		*a.PointsEarned,
		model.TransactionTypeAssignment,
		fmt.Sprintf("Points for: %s", name),
		&assignmentID,
		a.GradedBy,
	)
	return err
}

// AdminAdjustPoints records a manual award or deduction. adminID is nil
// when the caller authenticated with an API key.
func AdminAdjustPoints(db *gorm.DB, studentID uuid.UUID, amount float64, reason string, adminID *uuid.UUID) (*model.PointTransactionModel, error) {
	enabled, err := IsPointsSystemEnabled(db)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrPointsDisabled
	}

	txType := model.TransactionTypeAdminAward
	if amount < 0 {
		txType = model.TransactionTypeAdminDeduction
	}
	return CreatePointTransaction(db, studentID, amount, txType, reason, nil, adminID)
}

// SpendPoints debits a positive amount from a student's balance,
// refusing overdrafts.
func SpendPoints(db *gorm.DB, studentID uuid.UUID, amount float64, description string, createdBy *uuid.UUID) (*model.PointTransactionModel, error) {
	enabled, err := IsPointsSystemEnabled(db)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrPointsDisabled
	}
	if amount <= 0 {
		return nil, ErrZeroAmount
	}

	var row *model.PointTransactionModel
	err = db.Transaction(func(tx *gorm.DB) error {
		balance, err := GetOrCreateStudentPoints(tx, studentID)
		if err != nil {
			return err
		}
		if balance.CurrentBalance < amount {
			return ErrInsufficientBalance
		}
		row, err = CreatePointTransaction(tx, studentID, -amount, model.TransactionTypeSpending, description, nil, createdBy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}
