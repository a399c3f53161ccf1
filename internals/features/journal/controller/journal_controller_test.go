package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ourschool_backend/internals/features/journal/model"
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
		&model.JournalEntryModel{},
	))
	return db
}

// newJournalApp routes journal endpoints behind a stub that takes the
// caller identity from request headers.
func newJournalApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
			c.Locals("role", c.Get("X-Test-Role"))
		}
		return c.Next()
	})
	ctl := NewJournalController(db)
	app.Get("/journal/entries", ctl.List)
	app.Get("/journal/entries/:id", ctl.GetByID)
	app.Post("/journal/entries", ctl.Create)
	app.Put("/journal/entries/:id", ctl.Update)
	app.Delete("/journal/entries/:id", ctl.Delete)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, userName, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&usermodel.UserModel{
		ID: id, UserName: userName, Email: userName + "@example.com",
		Password: "x", FirstName: userName, LastName: "Tester", Role: role, IsActive: true,
	}).Error)
	return id
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body map[string]interface{}, userID uuid.UUID, role string) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", userID.String())
	req.Header.Set("X-Test-Role", role)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJournalStudentWritesOwnEntry(t *testing.T) {
	db := openTestDB(t)
	studentID := seedUser(t, db, "milo", "student")
	app := newJournalApp(db)

	resp := doJSON(t, app, http.MethodPost, "/journal/entries", map[string]interface{}{
		"title":   "Field trip notes",
		"content": "We visited the science museum.",
	}, studentID, "student")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var entry model.JournalEntryModel
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, studentID, entry.JournalEntryStudentID)
	assert.Equal(t, studentID, entry.JournalEntryAuthorID)
	assert.NotEqual(t, uuid.Nil, entry.JournalEntryID)
}

func TestJournalAdminWritesAboutStudent(t *testing.T) {
	db := openTestDB(t)
	adminID := seedUser(t, db, "parent", "admin")
	studentID := seedUser(t, db, "milo", "student")
	app := newJournalApp(db)

	// admin must name the student
	resp := doJSON(t, app, http.MethodPost, "/journal/entries", map[string]interface{}{
		"title":   "Progress note",
		"content": "Good week.",
	}, adminID, "admin")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/journal/entries", map[string]interface{}{
		"student_id": studentID.String(),
		"title":      "Progress note",
		"content":    "Good week.",
		"entry_date": "2026-02-10",
	}, adminID, "admin")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var entry model.JournalEntryModel
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, studentID, entry.JournalEntryStudentID)
	assert.Equal(t, adminID, entry.JournalEntryAuthorID)
	assert.Equal(t, "2026-02-10", entry.JournalEntryDate.Format("2006-01-02"))
}

func TestJournalAdminEntryForUnknownStudent(t *testing.T) {
	db := openTestDB(t)
	adminID := seedUser(t, db, "parent", "admin")
	app := newJournalApp(db)

	resp := doJSON(t, app, http.MethodPost, "/journal/entries", map[string]interface{}{
		"student_id": uuid.New().String(),
		"title":      "Note",
		"content":    "x",
	}, adminID, "admin")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestJournalListScopesStudentsToTheirOwnEntries(t *testing.T) {
	db := openTestDB(t)
	adminID := seedUser(t, db, "parent", "admin")
	miloID := seedUser(t, db, "milo", "student")
	junoID := seedUser(t, db, "juno", "student")
	app := newJournalApp(db)

	for _, sid := range []uuid.UUID{miloID, junoID} {
		resp := doJSON(t, app, http.MethodPost, "/journal/entries", map[string]interface{}{
			"student_id": sid.String(),
			"title":      "Note",
			"content":    "x",
		}, adminID, "admin")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodGet, "/journal/entries", nil, miloID, "student")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []struct {
			StudentID uuid.UUID `json:"journal_entry_student_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, miloID, envelope.Data[0].StudentID)

	resp = doJSON(t, app, http.MethodGet, "/journal/entries", nil, adminID, "admin")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestJournalOnlyAuthorOrAdminEdits(t *testing.T) {
	db := openTestDB(t)
	adminID := seedUser(t, db, "parent", "admin")
	miloID := seedUser(t, db, "milo", "student")
	junoID := seedUser(t, db, "juno", "student")
	app := newJournalApp(db)

	resp := doJSON(t, app, http.MethodPost, "/journal/entries", map[string]interface{}{
		"title":   "Mine",
		"content": "x",
	}, miloID, "student")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var entry model.JournalEntryModel
	require.NoError(t, db.First(&entry).Error)
	path := "/journal/entries/" + entry.JournalEntryID.String()

	resp = doJSON(t, app, http.MethodPut, path, map[string]interface{}{"title": "Stolen"}, junoID, "student")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, path, nil, junoID, "student")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, path, map[string]interface{}{"title": "Edited"}, miloID, "student")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, path, nil, adminID, "admin")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.JournalEntryModel{}).Count(&count).Error)
	assert.Zero(t, count)
}
