package model

import (
	"time"

	"github.com/google/uuid"
)

// APIKeyModel represents the api_keys table. The plaintext key is shown
// once at issue time; only its SHA-256 hex digest is stored.
type APIKeyModel struct {
	APIKeyID         uuid.UUID  `json:"api_key_id" gorm:"column:api_key_id;type:uuid;default:(gen_random_uuid());primaryKey"`
	APIKeyName       string     `json:"api_key_name" gorm:"column:api_key_name;size:120;not null"`
	APIKeyHash       string     `json:"-" gorm:"column:api_key_hash;size:64;not null;uniqueIndex"`
	APIKeyIsActive   bool       `json:"api_key_is_active" gorm:"column:api_key_is_active;not null;default:true"`
	APIKeyLastUsedAt *time.Time `json:"api_key_last_used_at,omitempty" gorm:"column:api_key_last_used_at"`
	APIKeyCreatedAt  time.Time  `json:"api_key_created_at" gorm:"column:api_key_created_at;not null;autoCreateTime"`
}

func (APIKeyModel) TableName() string { return "api_keys" }
