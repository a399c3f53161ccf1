package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	journalmodel "ourschool_backend/internals/features/journal/model"
	pointsmodel "ourschool_backend/internals/features/progress/points/model"
	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	attendancemodel "ourschool_backend/internals/features/school/attendance/model"
	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
	termmodel "ourschool_backend/internals/features/school/terms/model"
	settingsmodel "ourschool_backend/internals/features/system/settings/model"
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
		&subjectmodel.LessonModel{},
		&termmodel.TermModel{},
		&termmodel.TermSubjectModel{},
		&termmodel.StudentTermGradeModel{},
		&assignmentmodel.AssignmentTemplateModel{},
		&assignmentmodel.StudentAssignmentModel{},
		&attendancemodel.AttendanceRecordModel{},
		&pointsmodel.StudentPointsModel{},
		&pointsmodel.PointTransactionModel{},
		&journalmodel.JournalEntryModel{},
	))
	return db
}

func seedDataset(t *testing.T, db *gorm.DB) (studentID, subjectID uuid.UUID) {
	t.Helper()
	studentID = uuid.New()
	subjectID = uuid.New()

	require.NoError(t, db.Create(&usermodel.UserModel{
		ID: studentID, UserName: "milo", Email: "milo@example.com",
		Password: "$2a$10$fakehashfortests", FirstName: "Milo", LastName: "Park",
		Role: "student", IsActive: true,
	}).Error)

	require.NoError(t, db.Create(&settingsmodel.SystemSettingModel{
		SettingKey: "attendance.required_days_of_instruction", SettingValue: "180",
	}).Error)

	require.NoError(t, db.Create(&subjectmodel.SubjectModel{
		SubjectID: subjectID, SubjectName: "History",
	}).Error)

	day, err := time.Parse("2006-01-02", "2026-02-10")
	require.NoError(t, err)
	require.NoError(t, db.Create(&attendancemodel.AttendanceRecordModel{
		AttendanceID:        uuid.New(),
		AttendanceStudentID: studentID,
		AttendanceDate:      day,
		AttendanceStatus:    attendancemodel.StatusPresent,
	}).Error)

	require.NoError(t, db.Create(&pointsmodel.StudentPointsModel{
		StudentPointsID:        uuid.New(),
		StudentPointsStudentID: studentID,
		CurrentBalance:         12.5,
		TotalEarned:            12.5,
	}).Error)

	require.NoError(t, db.Create(&journalmodel.JournalEntryModel{
		JournalEntryID:        uuid.New(),
		JournalEntryStudentID: studentID,
		JournalEntryAuthorID:  studentID,
		JournalEntryTitle:     "Museum day",
		JournalEntryContent:   "Saw the dinosaur hall.",
		JournalEntryDate:      day,
	}).Error)
	return studentID, subjectID
}

func TestExportCarriesPasswordHashes(t *testing.T) {
	db := openTestDB(t)
	seedDataset(t, db)

	snap, err := Export(db)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "$2a$10$fakehashfortests", snap.Users[0].PasswordHash)

	// the hash must survive the JSON round trip even though the user
	// model itself never serializes it
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back.Users, 1)
	assert.Equal(t, "$2a$10$fakehashfortests", back.Users[0].PasswordHash)
	assert.Empty(t, back.Users[0].UserModel.Password)
}

func TestImportReplacesDataset(t *testing.T) {
	db := openTestDB(t)
	studentID, _ := seedDataset(t, db)

	snap, err := Export(db)
	require.NoError(t, err)

	// mutate after the export: a new user and a renamed subject
	require.NoError(t, db.Create(&usermodel.UserModel{
		ID: uuid.New(), UserName: "intruder", Email: "intruder@example.com",
		Password: "x", FirstName: "In", LastName: "Truder", Role: "student", IsActive: true,
	}).Error)
	require.NoError(t, db.Model(&subjectmodel.SubjectModel{}).
		Where("1 = 1").Update("subject_name", "Mystery").Error)

	// restore through the same JSON form a real import would receive
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var restored Snapshot
	require.NoError(t, json.Unmarshal(raw, &restored))

	require.NoError(t, Import(db, &restored))

	var users []usermodel.UserModel
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, studentID, users[0].ID)
	assert.Equal(t, "$2a$10$fakehashfortests", users[0].Password, "login hash restored")

	var subject subjectmodel.SubjectModel
	require.NoError(t, db.First(&subject).Error)
	assert.Equal(t, "History", subject.SubjectName)

	var balance pointsmodel.StudentPointsModel
	require.NoError(t, db.First(&balance, "student_points_student_id = ?", studentID).Error)
	assert.InDelta(t, 12.5, balance.CurrentBalance, 1e-9)

	var attendanceCount int64
	require.NoError(t, db.Model(&attendancemodel.AttendanceRecordModel{}).Count(&attendanceCount).Error)
	assert.EqualValues(t, 1, attendanceCount)

	var entry journalmodel.JournalEntryModel
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "Museum day", entry.JournalEntryTitle)
}

func TestImportEmptySnapshotSlicesAreFine(t *testing.T) {
	db := openTestDB(t)
	studentID, _ := seedDataset(t, db)

	snap := &Snapshot{
		Version: SnapshotVersion,
		Users: []UserRecord{{
			UserModel: usermodel.UserModel{
				ID: studentID, UserName: "milo", Email: "milo@example.com",
				FirstName: "Milo", LastName: "Park", Role: "student", IsActive: true,
			},
			PasswordHash: "h",
		}},
	}
	require.NoError(t, Import(db, snap))

	var subjectCount int64
	require.NoError(t, db.Model(&subjectmodel.SubjectModel{}).Count(&subjectCount).Error)
	assert.Zero(t, subjectCount, "tables absent from the snapshot end up empty")
}
