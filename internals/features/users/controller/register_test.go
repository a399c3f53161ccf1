package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ourschool_backend/internals/features/users/model"
	"ourschool_backend/internals/middlewares"
)

const testSecret = "register-test-secret"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.UserModel{}))
	return db
}

func newRegisterApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	optionalJWT := middlewares.AuthJWTOptional(middlewares.AuthJWTOpts{Secret: testSecret})
	ctl := NewUserController(db)
	app.Post("/register", optionalJWT, ctl.Register)
	return app
}

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := middlewares.AppClaims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   userID.String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func registerPayload(userName, role string) map[string]interface{} {
	return map[string]interface{}{
		"user_name":  userName,
		"email":      userName + "@example.com",
		"password":   "correct-horse",
		"first_name": "Test",
		"last_name":  "User",
		"role":       role,
	}
}

func postRegister(t *testing.T, app *fiber.App, body map[string]interface{}, token string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/register", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedAdmin(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.UserModel{
		ID: id, UserName: "parent", Email: "parent@example.com",
		Password: "x", FirstName: "Pat", LastName: "Lee", Role: "admin", IsActive: true,
	}).Error)
	return id
}

func TestRegisterBootstrapsFirstUser(t *testing.T) {
	db := openTestDB(t)
	app := newRegisterApp(db)

	resp := postRegister(t, app, registerPayload("founder", "admin"), "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user model.UserModel
	require.NoError(t, db.First(&user, "user_name = ?", "founder").Error)
	assert.Equal(t, "admin", user.Role)
	assert.NotEqual(t, "correct-horse", user.Password)
}

func TestRegisterAnonymousBlockedAfterBootstrap(t *testing.T) {
	db := openTestDB(t)
	seedAdmin(t, db)
	app := newRegisterApp(db)

	resp := postRegister(t, app, registerPayload("sneaky", "admin"), "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no second account minted")
}

func TestRegisterGarbageTokenTreatedAsAnonymous(t *testing.T) {
	db := openTestDB(t)
	seedAdmin(t, db)
	app := newRegisterApp(db)

	resp := postRegister(t, app, registerPayload("sneaky", "admin"), "not-a-jwt")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRegisterAdminCreatesStudent(t *testing.T) {
	db := openTestDB(t)
	adminID := seedAdmin(t, db)
	app := newRegisterApp(db)

	resp := postRegister(t, app, registerPayload("milo", "student"), signToken(t, adminID, "admin"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user model.UserModel
	require.NoError(t, db.First(&user, "user_name = ?", "milo").Error)
	assert.Equal(t, "student", user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestRegisterStudentTokenRejected(t *testing.T) {
	db := openTestDB(t)
	seedAdmin(t, db)
	studentID := uuid.New()
	app := newRegisterApp(db)

	resp := postRegister(t, app, registerPayload("other", "student"), signToken(t, studentID, "student"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
