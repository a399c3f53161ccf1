package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ourschool_backend/internals/features/progress/points/model"
	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	settingsmodel "ourschool_backend/internals/features/system/settings/model"
	settingsservice "ourschool_backend/internals/features/system/settings/service"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&settingsmodel.SystemSettingModel{},
		&model.StudentPointsModel{},
		&model.PointTransactionModel{},
	))
	return db
}

func enablePoints(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, settingsservice.Set(db, settingsservice.KeyPointsSystemEnabled, "true"))
}

func TestGetOrCreateStudentPointsIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()

	first, err := GetOrCreateStudentPoints(db, studentID)
	require.NoError(t, err)
	assert.Zero(t, first.CurrentBalance)

	second, err := GetOrCreateStudentPoints(db, studentID)
	require.NoError(t, err)
	assert.Equal(t, first.StudentPointsID, second.StudentPointsID)

	var count int64
	require.NoError(t, db.Model(&model.StudentPointsModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreatePointTransactionKeepsBalanceEqualToLedgerSum(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()

	amounts := []float64{10, 25.5, -5, 40, -12.25}
	for _, amt := range amounts {
		txType := model.TransactionTypeAdminAward
		if amt < 0 {
			txType = model.TransactionTypeAdminDeduction
		}
		_, err := CreatePointTransaction(db, studentID, amt, txType, "test", nil, nil)
		require.NoError(t, err)
	}

	var ledgerSum float64
	require.NoError(t, db.Model(&model.PointTransactionModel{}).
		Where("point_transaction_student_id = ?", studentID).
		Select("COALESCE(SUM(amount), 0)").Scan(&ledgerSum).Error)

	balance, err := GetOrCreateStudentPoints(db, studentID)
	require.NoError(t, err)

	assert.InDelta(t, ledgerSum, balance.CurrentBalance, 1e-9)
	assert.InDelta(t, 58.25, balance.CurrentBalance, 1e-9)
	assert.InDelta(t, 75.5, balance.TotalEarned, 1e-9)
	assert.InDelta(t, 17.25, balance.TotalSpent, 1e-9)
}

func TestCreatePointTransactionRejectsBadInput(t *testing.T) {
	db := openTestDB(t)

	_, err := CreatePointTransaction(db, uuid.New(), 0, model.TransactionTypeAdminAward, "zero", nil, nil)
	assert.ErrorIs(t, err, ErrZeroAmount)

	_, err = CreatePointTransaction(db, uuid.New(), 5, "bogus", "bad type", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestAdminAdjustPointsPicksTransactionType(t *testing.T) {
	db := openTestDB(t)
	enablePoints(t, db)
	studentID := uuid.New()
	adminID := uuid.New()

	award, err := AdminAdjustPoints(db, studentID, 15, "good behavior", &adminID)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeAdminAward, award.Type)
	require.NotNil(t, award.CreatedBy)
	assert.Equal(t, adminID, *award.CreatedBy)

	deduction, err := AdminAdjustPoints(db, studentID, -5, "late work", &adminID)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeAdminDeduction, deduction.Type)

	balance, err := GetOrCreateStudentPoints(db, studentID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, balance.CurrentBalance, 1e-9)
}

func TestAdminAdjustPointsWithoutAttribution(t *testing.T) {
	db := openTestDB(t)
	enablePoints(t, db)

	row, err := AdminAdjustPoints(db, uuid.New(), 7, "integration award", nil)
	require.NoError(t, err)
	assert.Nil(t, row.CreatedBy)
}

func TestAdjustAndSpendRefuseWhenDisabled(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()

	_, err := AdminAdjustPoints(db, studentID, 10, "nope", nil)
	assert.ErrorIs(t, err, ErrPointsDisabled)

	_, err = SpendPoints(db, studentID, 5, "nope", nil)
	assert.ErrorIs(t, err, ErrPointsDisabled)

	var count int64
	require.NoError(t, db.Model(&model.PointTransactionModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSpendPointsRefusesOverdraft(t *testing.T) {
	db := openTestDB(t)
	enablePoints(t, db)
	studentID := uuid.New()

	_, err := AdminAdjustPoints(db, studentID, 20, "seed", nil)
	require.NoError(t, err)

	_, err = SpendPoints(db, studentID, 25, "too much", &studentID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	row, err := SpendPoints(db, studentID, 15, "reward", &studentID)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeSpending, row.Type)
	assert.InDelta(t, -15.0, row.Amount, 1e-9)

	balance, err := GetOrCreateStudentPoints(db, studentID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, balance.CurrentBalance, 1e-9)
	assert.InDelta(t, 15.0, balance.TotalSpent, 1e-9)
}

func TestAwardAssignmentPoints(t *testing.T) {
	db := openTestDB(t)
	studentID := uuid.New()
	graderID := uuid.New()
	earned := 42.5

	assignment := &assignmentmodel.StudentAssignmentModel{
		StudentAssignmentID:        uuid.New(),
		StudentAssignmentStudentID: studentID,
		PointsEarned:               &earned,
		GradedBy:                   &graderID,
		Template: &assignmentmodel.AssignmentTemplateModel{
			AssignmentTemplateName: "Chapter 5 Quiz",
		},
	}

	// disabled: silently does nothing
	require.NoError(t, AwardAssignmentPoints(db, assignment))
	var count int64
	require.NoError(t, db.Model(&model.PointTransactionModel{}).Count(&count).Error)
	assert.Zero(t, count)

	enablePoints(t, db)
	require.NoError(t, AwardAssignmentPoints(db, assignment))

	var row model.PointTransactionModel
	require.NoError(t, db.First(&row, "point_transaction_student_id = ?", studentID).Error)
	assert.Equal(t, model.TransactionTypeAssignment, row.Type)
	assert.InDelta(t, 42.5, row.Amount, 1e-9)
	assert.Equal(t, "Points for: Chapter 5 Quiz", row.Description)
	require.NotNil(t, row.SourceAssignmentID)
	assert.Equal(t, assignment.StudentAssignmentID, *row.SourceAssignmentID)

	balance, err := GetOrCreateStudentPoints(db, studentID)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, balance.CurrentBalance, 1e-9)
}

func TestAwardAssignmentPointsSkipsZeroEarned(t *testing.T) {
	db := openTestDB(t)
	enablePoints(t, db)

	zero := 0.0
	assignment := &assignmentmodel.StudentAssignmentModel{
		StudentAssignmentID:        uuid.New(),
		StudentAssignmentStudentID: uuid.New(),
		PointsEarned:               &zero,
	}
	require.NoError(t, AwardAssignmentPoints(db, assignment))

	var count int64
	require.NoError(t, db.Model(&model.PointTransactionModel{}).Count(&count).Error)
	assert.Zero(t, count)
}
