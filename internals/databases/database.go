package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ourschool_backend/internals/configs"
	journalmodel "ourschool_backend/internals/features/journal/model"
	attendancemodel "ourschool_backend/internals/features/school/attendance/model"
	assignmentmodel "ourschool_backend/internals/features/school/assignments/model"
	subjectmodel "ourschool_backend/internals/features/school/subjects/model"
	termmodel "ourschool_backend/internals/features/school/terms/model"
	pointsmodel "ourschool_backend/internals/features/progress/points/model"
	apikeymodel "ourschool_backend/internals/features/system/apikeys/model"
	settingsmodel "ourschool_backend/internals/features/system/settings/model"
	usermodel "ourschool_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "disable")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=ourschool&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // safe with PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] failed to connect to database: %v", err)
	}
	DB = db
	log.Println("[INFO] database connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync with the models. Order matters for
// foreign keys: referenced tables first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usermodel.UserModel{},
		&settingsmodel.SystemSettingModel{},
		&apikeymodel.APIKeyModel{},
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
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
