package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ourschool_backend/internals/features/system/settings/dto"
	"ourschool_backend/internals/features/system/settings/model"
	helper "ourschool_backend/internals/helpers"
)

type SettingsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db, Validator: validator.New()}
}

// GET /settings
func (ctl *SettingsController) List(c *fiber.Ctx) error {
	var rows []model.SystemSettingModel
	if err := ctl.DB.Order("setting_key ASC").Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}

// GET /settings/:key
func (ctl *SettingsController) GetByKey(c *fiber.Ctx) error {
	key := c.Params("key")

	var row model.SystemSettingModel
	if err := ctl.DB.First(&row, "setting_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Setting not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", row)
}

// PUT /settings/:key (upsert)
func (ctl *SettingsController) Upsert(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Setting key is required")
	}

	var req dto.UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.SystemSettingModel{
		SettingKey:         key,
		SettingValue:       req.Value,
		SettingDescription: req.Description,
	}
	if err := ctl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_description", "setting_updated_at"}),
	}).Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Setting saved", row)
}

// DELETE /settings/:key
func (ctl *SettingsController) Delete(c *fiber.Ctx) error {
	key := c.Params("key")

	res := ctl.DB.Delete(&model.SystemSettingModel{}, "setting_key = ?", key)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Setting not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
