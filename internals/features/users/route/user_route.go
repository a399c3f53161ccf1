package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/configs"
	"ourschool_backend/internals/features/users/controller"
	"ourschool_backend/internals/middlewares"
)

// AuthRoutes mounts the public auth endpoints. Register runs behind the
// optional JWT parser: anonymous callers are only honored while the
// users table is empty, everyone else must be an admin.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controller.NewUserController(db)

	optionalJWT := middlewares.AuthJWTOptional(middlewares.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	auth := app.Group("/api/auth")
	auth.Post("/register", optionalJWT, ctl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// UserRoutes mounts endpoints available to any authenticated user.
func UserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)
	user.Get("/me", ctl.Me)
}

// UserAdminRoutes mounts the admin-only user management endpoints.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserController(db)
	admin.Get("/users", ctl.List)
	admin.Get("/students", ctl.ListStudents)
	admin.Put("/users/:id", ctl.Update)
	admin.Delete("/users/:id", ctl.Delete)
}
