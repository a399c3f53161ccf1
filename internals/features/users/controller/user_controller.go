package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ourschool_backend/internals/configs"
	"ourschool_backend/internals/constants"
	"ourschool_backend/internals/features/users/dto"
	"ourschool_backend/internals/features/users/model"
	helper "ourschool_backend/internals/helpers"
	"ourschool_backend/internals/middlewares"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: validator.New()}
}

func toUserResponse(u *model.UserModel) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		GradeLevel: u.GradeLevel,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// POST /api/auth/register
// Anonymous creation is honored only while the users table is empty
// (first-user bootstrap); after that an admin token is required.
func (ctl *UserController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var existing int64
	if err := ctl.DB.Model(&model.UserModel{}).Count(&existing).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if existing > 0 && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "Only administrators can create users")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		ID:         uuid.New(),
		UserName:   req.UserName,
		Email:      req.Email,
		Password:   string(hash),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		GradeLevel: req.GradeLevel,
		IsActive:   true,
	}

	if err := ctl.DB.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Username or email already in use")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created", toUserResponse(&user))
}

// POST /api/auth/login
func (ctl *UserController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctl.DB.Where("user_name = ?", req.UserName).First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	claims := middlewares.AppClaims{
		UserID: user.ID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.Success(c, "Login successful", dto.LoginResponse{
		AccessToken: signed,
		User:        toUserResponse(&user),
	})
}

// GET /api/u/me
func (ctl *UserController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.UserModel
	if err := ctl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "OK", toUserResponse(&user))
}

// GET /api/a/users?role=&active=
func (ctl *UserController) List(c *fiber.Ctx) error {
	qry := ctl.DB.Model(&model.UserModel{})
	if role := c.Query("role"); role != "" {
		qry = qry.Where("role = ?", role)
	}
	if v := c.Query("active"); v != "" {
		qry = qry.Where("is_active = ?", v == "true" || v == "1")
	}

	var users []model.UserModel
	if err := qry.Order("first_name ASC, last_name ASC").Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return helper.Success(c, "OK", out)
}

// GET /api/a/students — convenience listing used by attendance and grading UIs.
func (ctl *UserController) ListStudents(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctl.DB.
		Where("role = ? AND is_active = ?", constants.RoleStudent, true).
		Order("first_name ASC, last_name ASC").
		Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return helper.Success(c, "OK", out)
}

// PUT /api/a/users/:id (partial update)
func (ctl *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.GradeLevel != nil {
		updates["grade_level"] = *req.GradeLevel
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Success(c, "OK", toUserResponse(&user))
	}

	if err := ctl.DB.Model(&user).Updates(updates).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Email already in use")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "User updated", toUserResponse(&user))
}

// DELETE /api/a/users/:id
func (ctl *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctl.DB.Delete(&model.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
