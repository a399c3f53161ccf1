package model

import "time"

// SystemSettingModel represents the system_settings key/value table.
// Values are stored as text and decoded by the settings service.
type SystemSettingModel struct {
	SettingKey         string    `json:"setting_key" gorm:"column:setting_key;size:120;primaryKey"`
	SettingValue       string    `json:"setting_value" gorm:"column:setting_value;not null"`
	SettingDescription *string   `json:"setting_description,omitempty" gorm:"column:setting_description"`
	SettingUpdatedAt   time.Time `json:"setting_updated_at" gorm:"column:setting_updated_at;not null;autoUpdateTime"`
}

func (SystemSettingModel) TableName() string { return "system_settings" }
