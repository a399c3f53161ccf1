package controller

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/system/apikeys/dto"
	"ourschool_backend/internals/features/system/apikeys/model"
	helper "ourschool_backend/internals/helpers"
)

type APIKeyController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAPIKeyController(db *gorm.DB) *APIKeyController {
	return &APIKeyController{DB: db, Validator: validator.New()}
}

// POST /api-keys
// Issues a new key. The plaintext is returned once and never stored.
func (ctl *APIKeyController) Create(c *fiber.Ctx) error {
	var req dto.CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate key")
	}
	plaintext := "osk_" + hex.EncodeToString(buf)
	sum := sha256.Sum256([]byte(plaintext))

	row := model.APIKeyModel{
		APIKeyID:       uuid.New(),
		APIKeyName:     req.Name,
		APIKeyHash:     hex.EncodeToString(sum[:]),
		APIKeyIsActive: true,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "API key issued", dto.IssuedAPIKeyResponse{
		APIKeyID:  row.APIKeyID,
		Name:      row.APIKeyName,
		Key:       plaintext,
		CreatedAt: row.APIKeyCreatedAt,
	})
}

// GET /api-keys
func (ctl *APIKeyController) List(c *fiber.Ctx) error {
	var rows []model.APIKeyModel
	if err := ctl.DB.Order("api_key_created_at DESC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// DELETE /api-keys/:id
// Revokes a key. The row is kept so api_key_last_used_at stays auditable.
func (ctl *APIKeyController) Revoke(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid API key id")
	}

	res := ctl.DB.Model(&model.APIKeyModel{}).
		Where("api_key_id = ? AND api_key_is_active = ?", id, true).
		Update("api_key_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "API key not found or already revoked")
	}
	return helper.Success(c, "API key revoked", nil)
}
