package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ourschool_backend/internals/features/system/settings/model"
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

	require.NoError(t, db.AutoMigrate(&model.SystemSettingModel{}))
	return db
}

func TestGetStringMissingKeyReturnsDefault(t *testing.T) {
	db := openTestDB(t)

	got, err := GetString(db, "no.such.key", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestSetIsAnUpsert(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Set(db, "ui.theme", "light"))
	require.NoError(t, Set(db, "ui.theme", "dark"))

	got, err := GetString(db, "ui.theme", "")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	var count int64
	require.NoError(t, db.Model(&model.SystemSettingModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetBoolSpellings(t *testing.T) {
	db := openTestDB(t)

	for _, v := range []string{"true", "1", "yes", "ON", " True "} {
		require.NoError(t, Set(db, "flag", v))
		got, err := GetBool(db, "flag", false)
		require.NoError(t, err)
		assert.Truef(t, got, "value %q", v)
	}

	for _, v := range []string{"false", "0", "no", "off", "banana"} {
		require.NoError(t, Set(db, "flag", v))
		got, err := GetBool(db, "flag", true)
		require.NoError(t, err)
		assert.Falsef(t, got, "value %q", v)
	}

	got, err := GetBool(db, "missing.flag", true)
	require.NoError(t, err)
	assert.True(t, got, "missing key keeps the default")
}

func TestGetIntMalformedFallsBack(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Set(db, "days", "200"))
	got, err := GetInt(db, "days", 180)
	require.NoError(t, err)
	assert.Equal(t, 200, got)

	require.NoError(t, Set(db, "days", "two hundred"))
	got, err = GetInt(db, "days", 180)
	require.NoError(t, err)
	assert.Equal(t, 180, got)
}

func TestGetFloatMalformedFallsBack(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Set(db, "weight", " 2.5 "))
	got, err := GetFloat(db, "weight", 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-9)

	require.NoError(t, Set(db, "weight", "heavy"))
	got, err = GetFloat(db, "weight", 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestUnsetTolerantOfMissingKey(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Set(db, "gone.soon", "x"))
	require.NoError(t, Unset(db, "gone.soon"))
	require.NoError(t, Unset(db, "gone.soon"))

	got, err := GetString(db, "gone.soon", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}

func TestInitializeDefaultsKeepsExistingValues(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Set(db, KeyRequiredDaysOfInstruction, "190"))
	require.NoError(t, InitializeDefaults(db))

	days, err := GetInt(db, KeyRequiredDaysOfInstruction, 0)
	require.NoError(t, err)
	assert.Equal(t, 190, days, "seeding must not clobber an admin override")

	enabled, err := GetBool(db, KeyPointsSystemEnabled, true)
	require.NoError(t, err)
	assert.False(t, enabled, "points ship disabled")

	// idempotent
	require.NoError(t, InitializeDefaults(db))
}
