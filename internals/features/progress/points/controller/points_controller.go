package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ourschool_backend/internals/features/progress/points/dto"
	"ourschool_backend/internals/features/progress/points/model"
	"ourschool_backend/internals/features/progress/points/service"
	settingsservice "ourschool_backend/internals/features/system/settings/service"
	helper "ourschool_backend/internals/helpers"
)

type PointsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPointsController(db *gorm.DB) *PointsController {
	return &PointsController{DB: db, Validator: validator.New()}
}

// GET /points/status
func (ctl *PointsController) Status(c *fiber.Ctx) error {
	enabled, err := service.IsPointsSystemEnabled(ctl.DB)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", fiber.Map{"enabled": enabled})
}

// PUT /points/status
func (ctl *PointsController) Toggle(c *fiber.Ctx) error {
	var req dto.TogglePointsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}

	if err := settingsservice.Set(ctl.DB, settingsservice.KeyPointsSystemEnabled, strconv.FormatBool(req.Enabled)); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Points system updated", fiber.Map{"enabled": req.Enabled})
}

// GET /points/me
func (ctl *PointsController) MyBalance(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
	}
	return ctl.balanceFor(c, studentID)
}

// GET /students/:id/points
func (ctl *PointsController) StudentBalance(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}
	return ctl.balanceFor(c, studentID)
}

func (ctl *PointsController) balanceFor(c *fiber.Ctx, studentID uuid.UUID) error {
	balance, err := service.GetOrCreateStudentPoints(ctl.DB, studentID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", balance)
}

// GET /points/me/transactions
func (ctl *PointsController) MyTransactions(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
	}
	return ctl.transactionsFor(c, studentID)
}

// GET /students/:id/points/transactions
func (ctl *PointsController) StudentTransactions(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}
	return ctl.transactionsFor(c, studentID)
}

func (ctl *PointsController) transactionsFor(c *fiber.Ctx, studentID uuid.UUID) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	base := ctl.DB.Model(&model.PointTransactionModel{}).
		Where("point_transaction_student_id = ?", studentID)
	if t := c.Query("type"); t != "" {
		if !model.ValidTransactionType(t) {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid transaction type")
		}
		base = base.Where("type = ?", t)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"amount":     "amount",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.PointTransactionModel
	if err := base.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"transactions": rows,
		"pagination":   helper.BuildMeta(total, p),
	})
}

// POST /points/adjust
func (ctl *PointsController) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// API key callers carry no admin identity; the ledger row then has
	// a null created_by.
	var adminID *uuid.UUID
	if !helper.IsAPIKeyCaller(c) {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing admin identity")
		}
		adminID = &id
	}

	row, err := service.AdminAdjustPoints(ctl.DB, req.StudentID, req.Amount, req.Reason, adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPointsDisabled):
			return helper.Error(c, fiber.StatusConflict, "Points system is disabled")
		case errors.Is(err, service.ErrZeroAmount):
			return helper.Error(c, fiber.StatusBadRequest, "Amount must be non-zero")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Points adjusted", row)
}

// POST /points/spend
func (ctl *PointsController) Spend(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing user identity")
	}

	var req dto.SpendPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := service.SpendPoints(ctl.DB, studentID, req.Amount, req.Description, &studentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPointsDisabled):
			return helper.Error(c, fiber.StatusConflict, "Points system is disabled")
		case errors.Is(err, service.ErrInsufficientBalance):
			return helper.Error(c, fiber.StatusUnprocessableEntity, "Insufficient points balance")
		case errors.Is(err, service.ErrZeroAmount):
			return helper.Error(c, fiber.StatusBadRequest, "Amount must be positive")
		default:
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Points spent", row)
}

// GET /points/overview
// Every student's balance, for the admin dashboard.
func (ctl *PointsController) Overview(c *fiber.Ctx) error {
	var rows []model.StudentPointsModel
	if err := ctl.DB.Preload("Student").
		Order("current_balance DESC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", rows)
}
