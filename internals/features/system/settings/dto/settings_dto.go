package dto

type UpdateSettingRequest struct {
	Value       string  `json:"setting_value" validate:"required,max=2000"`
	Description *string `json:"setting_description" validate:"omitempty,max=500"`
}
