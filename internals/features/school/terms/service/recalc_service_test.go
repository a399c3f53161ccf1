package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
	"ourschool_backend/internals/features/school/terms/model"
	settingsmodel "ourschool_backend/internals/features/system/settings/model"
	settingsservice "ourschool_backend/internals/features/system/settings/service"
	usermodel "ourschool_backend/internals/features/users/model"
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
		&usermodel.UserModel{},
		&settingsmodel.SystemSettingModel{},
		&subjectmodel.SubjectModel{},
		&model.TermModel{},
		&model.TermSubjectModel{},
		&model.StudentTermGradeModel{},
		&assignmentmodel.AssignmentTemplateModel{},
		&assignmentmodel.StudentAssignmentModel{},
	))
	return db
}

type fixture struct {
	studentID uuid.UUID
	subjectID uuid.UUID
	termID    uuid.UUID
	linkID    uuid.UUID
	tmplID    uuid.UUID
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// seed builds a student, a subject, a 2026 spring term with the subject
// linked, and a 100-point template.
func seed(t *testing.T, db *gorm.DB, activate bool) fixture {
	t.Helper()
	f := fixture{
		studentID: uuid.New(),
		subjectID: uuid.New(),
		termID:    uuid.New(),
		linkID:    uuid.New(),
		tmplID:    uuid.New(),
	}

	require.NoError(t, db.Create(&usermodel.UserModel{
		ID:        f.studentID,
		UserName:  "milo",
		Email:     "milo@example.com",
		Password:  "x",
		FirstName: "Milo",
		LastName:  "Park",
		Role:      "student",
		IsActive:  true,
	}).Error)

	require.NoError(t, db.Create(&subjectmodel.SubjectModel{
		SubjectID:   f.subjectID,
		SubjectName: "Mathematics",
	}).Error)

	require.NoError(t, db.Create(&model.TermModel{
		TermID:           f.termID,
		TermName:         "Spring 2026",
		TermStartDate:    date("2026-01-05"),
		TermEndDate:      date("2026-06-12"),
		TermAcademicYear: "2025-2026",
		TermType:         model.TermTypeSemester,
		TermOrder:        2,
	}).Error)

	require.NoError(t, db.Create(&model.TermSubjectModel{
		TermSubjectID:        f.linkID,
		TermSubjectTermID:    f.termID,
		TermSubjectSubjectID: f.subjectID,
		TermSubjectIsActive:  true,
		TermSubjectWeight:    1,
	}).Error)

	require.NoError(t, db.Create(&assignmentmodel.AssignmentTemplateModel{
		AssignmentTemplateID:        f.tmplID,
		AssignmentTemplateName:      "Worksheet",
		AssignmentTemplateType:      assignmentmodel.AssignmentTypeWorksheet,
		AssignmentTemplateSubjectID: f.subjectID,
		AssignmentTemplateMaxPoints: 100,
	}).Error)

	if activate {
		require.NoError(t, settingsservice.Set(db, settingsservice.KeyActiveTermID, f.termID.String()))
	}
	return f
}

func gradedAssignment(f fixture, assigned string, earned float64) *assignmentmodel.StudentAssignmentModel {
	pts := earned
	return &assignmentmodel.StudentAssignmentModel{
		StudentAssignmentID:         uuid.New(),
		StudentAssignmentTemplateID: f.tmplID,
		StudentAssignmentStudentID:  f.studentID,
		AssignedDate:                date(assigned),
		Status:                      assignmentmodel.StatusGraded,
		IsGraded:                    true,
		PointsEarned:                &pts,
	}
}

func loadGrade(t *testing.T, db *gorm.DB, f fixture) *model.StudentTermGradeModel {
	t.Helper()
	var grade model.StudentTermGradeModel
	require.NoError(t, db.First(&grade,
		"student_term_grade_student_id = ? AND student_term_grade_term_subject_id = ?",
		f.studentID, f.linkID).Error)
	return &grade
}

func TestActiveTermResolution(t *testing.T) {
	db := openTestDB(t)

	term, err := ActiveTerm(db)
	require.NoError(t, err)
	assert.Nil(t, term, "no pointer set")

	f := seed(t, db, false)
	activated, err := ActivateTerm(db, f.termID)
	require.NoError(t, err)
	assert.Equal(t, f.termID, activated.TermID)

	term, err = ActiveTerm(db)
	require.NoError(t, err)
	require.NotNil(t, term)
	assert.Equal(t, f.termID, term.TermID)

	require.NoError(t, DeactivateTerm(db))
	term, err = ActiveTerm(db)
	require.NoError(t, err)
	assert.Nil(t, term)
}

func TestActivateTermUnknownID(t *testing.T) {
	db := openTestDB(t)
	_, err := ActivateTerm(db, uuid.New())
	assert.ErrorIs(t, err, ErrTermNotFound)
}

func TestActiveTermStalePointer(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, settingsservice.Set(db, settingsservice.KeyActiveTermID, uuid.New().String()))

	term, err := ActiveTerm(db)
	require.NoError(t, err)
	assert.Nil(t, term, "pointer at a deleted term resolves to no active term")
}

func TestRecalcNoActiveTermIsANoOp(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, false)
	require.NoError(t, db.Create(gradedAssignment(f, "2026-02-10", 80)).Error)

	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))

	var count int64
	require.NoError(t, db.Model(&model.StudentTermGradeModel{}).Count(&count).Error)
	assert.Zero(t, count, "nothing aggregated without an active term")
}

func TestRecalcUnlinkedSubjectIsANoOp(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, true)

	otherSubject := uuid.New()
	require.NoError(t, db.Create(&subjectmodel.SubjectModel{
		SubjectID:   otherSubject,
		SubjectName: "Art",
	}).Error)

	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, otherSubject))

	var count int64
	require.NoError(t, db.Model(&model.StudentTermGradeModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecalcAggregatesGradedAssignmentsInWindow(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, true)

	require.NoError(t, db.Create(gradedAssignment(f, "2026-02-10", 40)).Error)
	require.NoError(t, db.Create(gradedAssignment(f, "2026-03-01", 45)).Error)

	// ungraded work counts toward the total only
	require.NoError(t, db.Create(&assignmentmodel.StudentAssignmentModel{
		StudentAssignmentID:         uuid.New(),
		StudentAssignmentTemplateID: f.tmplID,
		StudentAssignmentStudentID:  f.studentID,
		AssignedDate:                date("2026-03-15"),
		Status:                      assignmentmodel.StatusNotStarted,
	}).Error)

	// outside the term window, ignored entirely
	require.NoError(t, db.Create(gradedAssignment(f, "2025-11-01", 100)).Error)

	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))

	grade := loadGrade(t, db, f)
	assert.InDelta(t, 85.0, grade.CurrentPointsEarned, 1e-9)
	assert.InDelta(t, 200.0, grade.CurrentPointsPossible, 1e-9)
	assert.Equal(t, 2, grade.AssignmentsCompleted)
	assert.Equal(t, 3, grade.AssignmentsTotal)
	require.NotNil(t, grade.CurrentGradePercentage)
	assert.InDelta(t, 42.5, *grade.CurrentGradePercentage, 1e-9)
	require.NotNil(t, grade.CurrentLetterGrade)
	assert.Equal(t, "F", *grade.CurrentLetterGrade)
	assert.NotNil(t, grade.LastCalculated)
}

func TestRecalcHonorsCustomMaxPoints(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, true)

	a := gradedAssignment(f, "2026-02-10", 42.5)
	custom := 50.0
	a.CustomMaxPoints = &custom
	require.NoError(t, db.Create(a).Error)

	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))

	grade := loadGrade(t, db, f)
	assert.InDelta(t, 50.0, grade.CurrentPointsPossible, 1e-9)
	require.NotNil(t, grade.CurrentGradePercentage)
	assert.InDelta(t, 85.0, *grade.CurrentGradePercentage, 1e-9)
	require.NotNil(t, grade.CurrentLetterGrade)
	assert.Equal(t, "B", *grade.CurrentLetterGrade)
}

func TestRecalcIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, true)
	require.NoError(t, db.Create(gradedAssignment(f, "2026-02-10", 90)).Error)

	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))
	first := loadGrade(t, db, f)

	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))
	second := loadGrade(t, db, f)

	assert.Equal(t, first.StudentTermGradeID, second.StudentTermGradeID)
	assert.Equal(t, first.CurrentPointsEarned, second.CurrentPointsEarned)
	assert.Equal(t, first.CurrentPointsPossible, second.CurrentPointsPossible)
	assert.Equal(t, first.AssignmentsTotal, second.AssignmentsTotal)

	var count int64
	require.NoError(t, db.Model(&model.StudentTermGradeModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFinalizeFreezesAggregate(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, true)
	require.NoError(t, db.Create(gradedAssignment(f, "2026-02-10", 95)).Error)
	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))

	grade := loadGrade(t, db, f)
	adminID := uuid.New()

	finalized, err := FinalizeGrade(db, grade.StudentTermGradeID, &adminID, false)
	require.NoError(t, err)
	assert.True(t, finalized.IsFinalized)
	require.NotNil(t, finalized.FinalGradePercentage)
	assert.InDelta(t, 95.0, *finalized.FinalGradePercentage, 1e-9)
	require.NotNil(t, finalized.FinalLetterGrade)
	assert.Equal(t, "A", *finalized.FinalLetterGrade)
	require.NotNil(t, finalized.FinalizedBy)
	assert.Equal(t, adminID, *finalized.FinalizedBy)

	// second finalize is refused without force
	_, err = FinalizeGrade(db, grade.StudentTermGradeID, &adminID, false)
	assert.ErrorIs(t, err, ErrGradeFinalized)

	// force restamps
	otherAdmin := uuid.New()
	restamped, err := FinalizeGrade(db, grade.StudentTermGradeID, &otherAdmin, true)
	require.NoError(t, err)
	require.NotNil(t, restamped.FinalizedBy)
	assert.Equal(t, otherAdmin, *restamped.FinalizedBy)

	// later grading no longer moves the aggregate
	require.NoError(t, db.Create(gradedAssignment(f, "2026-04-01", 10)).Error)
	require.NoError(t, RecalcStudentTermGrade(db, f.studentID, f.subjectID))

	after := loadGrade(t, db, f)
	assert.InDelta(t, 95.0, after.CurrentPointsEarned, 1e-9)
	require.NotNil(t, after.FinalGradePercentage)
	assert.InDelta(t, 95.0, *after.FinalGradePercentage, 1e-9)
}

func TestCalculateAllTermGrades(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db, true)
	require.NoError(t, db.Create(gradedAssignment(f, "2026-02-10", 80)).Error)

	processed, err := CalculateAllTermGrades(db)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	grade := loadGrade(t, db, f)
	assert.InDelta(t, 80.0, grade.CurrentPointsEarned, 1e-9)
}

func TestCalculateAllTermGradesNoActiveTerm(t *testing.T) {
	db := openTestDB(t)
	seed(t, db, false)

	processed, err := CalculateAllTermGrades(db)
	require.NoError(t, err)
	assert.Zero(t, processed)
}
