package service

import (
	"time"

	"gorm.io/gorm"

	journalmodel "ourschool_backend/internals/features/journal/model"
	pointsmodel "ourschool_backend/internals/features/progress/points/model"
	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	attendancemodel "ourschool_backend/internals/features/school/attendance/model"
	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
	termmodel "ourschool_backend/internals/features/school/terms/model"
	settingsmodel "ourschool_backend/internals/features/system/settings/model"
	usermodel "ourschool_backend/internals/features/users/model"
)

const SnapshotVersion = 1

// UserRecord wraps a user with its bcrypt hash. The model marshals the
// hash as "-", but a restore has to keep logins working.
type UserRecord struct {
	usermodel.UserModel
	PasswordHash string `json:"password_hash"`
}

// Snapshot is the portable JSON form of the whole dataset. API keys
// stay out on purpose; a restored system re-issues them.
type Snapshot struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`

	Users               []UserRecord                            `json:"users"`
	Settings            []settingsmodel.SystemSettingModel      `json:"settings"`
	Subjects            []subjectmodel.SubjectModel             `json:"subjects"`
	Lessons             []subjectmodel.LessonModel              `json:"lessons"`
	Terms               []termmodel.TermModel                   `json:"terms"`
	TermSubjects        []termmodel.TermSubjectModel            `json:"term_subjects"`
	StudentTermGrades   []termmodel.StudentTermGradeModel       `json:"student_term_grades"`
	AssignmentTemplates []assignmentmodel.AssignmentTemplateModel `json:"assignment_templates"`
	StudentAssignments  []assignmentmodel.StudentAssignmentModel  `json:"student_assignments"`
	AttendanceRecords   []attendancemodel.AttendanceRecordModel   `json:"attendance_records"`
	StudentPoints       []pointsmodel.StudentPointsModel          `json:"student_points"`
	PointTransactions   []pointsmodel.PointTransactionModel       `json:"point_transactions"`
	JournalEntries      []journalmodel.JournalEntryModel          `json:"journal_entries"`
}

// Export reads every table into a snapshot.
func Export(db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: time.Now().UTC(),
	}

	var users []usermodel.UserModel
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	snap.Users = make([]UserRecord, 0, len(users))
	for i := range users {
		snap.Users = append(snap.Users, UserRecord{
			UserModel:    users[i],
			PasswordHash: users[i].Password,
		})
	}

	steps := []error{
		db.Find(&snap.Settings).Error,
		db.Find(&snap.Subjects).Error,
		db.Find(&snap.Lessons).Error,
		db.Find(&snap.Terms).Error,
		db.Find(&snap.TermSubjects).Error,
		db.Find(&snap.StudentTermGrades).Error,
		db.Find(&snap.AssignmentTemplates).Error,
		db.Find(&snap.StudentAssignments).Error,
		db.Find(&snap.AttendanceRecords).Error,
		db.Find(&snap.StudentPoints).Error,
		db.Find(&snap.PointTransactions).Error,
		db.Find(&snap.JournalEntries).Error,
	}
	for _, err := range steps {
		if err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// Import replaces the dataset with the snapshot's contents in one
// transaction. Tables are cleared child-first and repopulated
// parent-first so foreign keys hold throughout.
func Import(db *gorm.DB, snap *Snapshot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		clears := []interface{}{
			&journalmodel.JournalEntryModel{},
			&pointsmodel.PointTransactionModel{},
			&pointsmodel.StudentPointsModel{},
			&attendancemodel.AttendanceRecordModel{},
			&assignmentmodel.StudentAssignmentModel{},
			&assignmentmodel.AssignmentTemplateModel{},
			&termmodel.StudentTermGradeModel{},
			&termmodel.TermSubjectModel{},
			&termmodel.TermModel{},
			&subjectmodel.LessonModel{},
			&subjectmodel.SubjectModel{},
			&settingsmodel.SystemSettingModel{},
			&usermodel.UserModel{},
		}
		for _, m := range clears {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		users := make([]usermodel.UserModel, 0, len(snap.Users))
		for i := range snap.Users {
			u := snap.Users[i].UserModel
			u.Password = snap.Users[i].PasswordHash
			users = append(users, u)
		}
		if err := createAll(tx, users); err != nil {
			return err
		}
		if err := createAll(tx, snap.Settings); err != nil {
			return err
		}
		if err := createAll(tx, snap.Subjects); err != nil {
			return err
		}
		if err := createAll(tx, snap.Lessons); err != nil {
			return err
		}
		if err := createAll(tx, snap.Terms); err != nil {
			return err
		}
		if err := createAll(tx, snap.TermSubjects); err != nil {
			return err
		}
		if err := createAll(tx, snap.StudentTermGrades); err != nil {
			return err
		}
		if err := createAll(tx, snap.AssignmentTemplates); err != nil {
			return err
		}
		if err := createAll(tx, snap.StudentAssignments); err != nil {
			return err
		}
		if err := createAll(tx, snap.AttendanceRecords); err != nil {
			return err
		}
		if err := createAll(tx, snap.StudentPoints); err != nil {
			return err
		}
		if err := createAll(tx, snap.PointTransactions); err != nil {
			return err
		}
		return createAll(tx, snap.JournalEntries)
	})
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}
