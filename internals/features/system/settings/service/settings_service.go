package service

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourschool_backend/internals/features/system/settings/model"
)

// Well-known setting keys.
const (
	KeyRequiredDaysOfInstruction = "attendance.required_days_of_instruction"
	KeyPointsSystemEnabled       = "points.system_enabled"
	KeyActiveTermID              = "terms.active_term_id"
)

// DefaultRequiredDaysOfInstruction is the fallback denominator for
// attendance rates when the setting row is missing.
const DefaultRequiredDaysOfInstruction = 180

// GetString returns the raw value for key, or def when the row is missing.
func GetString(db *gorm.DB, key, def string) (string, error) {
	var row model.SystemSettingModel
	err := db.First(&row, "setting_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return row.SettingValue, nil
}

// GetBool decodes a boolean setting. Accepts true/1/yes/on, case-insensitive.
func GetBool(db *gorm.DB, key string, def bool) (bool, error) {
	raw, err := GetString(db, key, "")
	if err != nil {
		return def, err
	}
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, nil
	default:
		return false, nil
	}
}

// GetInt decodes an integer setting, falling back to def on missing or
// malformed values.
func GetInt(db *gorm.DB, key string, def int) (int, error) {
	raw, err := GetString(db, key, "")
	if err != nil {
		return def, err
	}
	if raw == "" {
		return def, nil
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		return def, nil
	}
	return n, nil
}

// GetFloat decodes a float setting, falling back to def on missing or
// malformed values.
func GetFloat(db *gorm.DB, key string, def float64) (float64, error) {
	raw, err := GetString(db, key, "")
	if err != nil {
		return def, err
	}
	if raw == "" {
		return def, nil
	}
	f, convErr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if convErr != nil {
		return def, nil
	}
	return f, nil
}

// Set upserts a setting value.
func Set(db *gorm.DB, key, value string) error {
	row := model.SystemSettingModel{SettingKey: key, SettingValue: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_updated_at"}),
	}).Create(&row).Error
}

// Unset removes a setting row; missing keys are not an error.
func Unset(db *gorm.DB, key string) error {
	return db.Delete(&model.SystemSettingModel{}, "setting_key = ?", key).Error
}

// InitializeDefaults seeds the well-known settings that reads assume
// exist. Existing rows are left untouched.
func InitializeDefaults(db *gorm.DB) error {
	defaults := []model.SystemSettingModel{
		{
			SettingKey:         KeyRequiredDaysOfInstruction,
			SettingValue:       strconv.Itoa(DefaultRequiredDaysOfInstruction),
			SettingDescription: strPtr("Denominator for attendance rate calculations"),
		},
		{
			SettingKey:         KeyPointsSystemEnabled,
			SettingValue:       "false",
			SettingDescription: strPtr("Whether graded work awards reward points"),
		},
	}
	for i := range defaults {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoNothing: true,
		}).Create(&defaults[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
