package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "ourschool_backend/internals/features/users/model"
)

// JournalEntryModel is one dated note about a student. Entries are
// written by the student themselves or by the administrator; the author
// is tracked separately from the subject student.
type JournalEntryModel struct {
	JournalEntryID        uuid.UUID `json:"journal_entry_id" gorm:"column:journal_entry_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	JournalEntryStudentID uuid.UUID `json:"journal_entry_student_id" gorm:"column:journal_entry_student_id;type:uuid;not null;index"`
	JournalEntryAuthorID  uuid.UUID `json:"journal_entry_author_id" gorm:"column:journal_entry_author_id;type:uuid;not null"`

	JournalEntryTitle   string    `json:"journal_entry_title" gorm:"column:journal_entry_title;size:200;not null"`
	JournalEntryContent string    `json:"journal_entry_content" gorm:"column:journal_entry_content;type:text;not null"`
	JournalEntryDate    time.Time `json:"journal_entry_date" gorm:"column:journal_entry_date;not null;index"`

	JournalEntryCreatedAt time.Time `json:"journal_entry_created_at" gorm:"column:journal_entry_created_at;not null;autoCreateTime"`
	JournalEntryUpdatedAt time.Time `json:"journal_entry_updated_at" gorm:"column:journal_entry_updated_at;not null;autoUpdateTime"`

	Student *usermodel.UserModel `json:"student,omitempty" gorm:"foreignKey:JournalEntryStudentID;references:ID"`
	Author  *usermodel.UserModel `json:"author,omitempty" gorm:"foreignKey:JournalEntryAuthorID;references:ID"`
}

func (JournalEntryModel) TableName() string { return "journal_entries" }
