package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAPIKeyRequest struct {
	Name string `json:"api_key_name" validate:"required,max=120"`
}

// IssuedAPIKeyResponse carries the plaintext key exactly once.
type IssuedAPIKeyResponse struct {
	APIKeyID  uuid.UUID `json:"api_key_id"`
	Name      string    `json:"api_key_name"`
	Key       string    `json:"api_key"`
	CreatedAt time.Time `json:"api_key_created_at"`
}
