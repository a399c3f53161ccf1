package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ourschool_backend/internals/configs"
	backuproute "ourschool_backend/internals/features/backup/route"
	journalroute "ourschool_backend/internals/features/journal/route"
	pointsroute "ourschool_backend/internals/features/progress/points/route"
	reportsroute "ourschool_backend/internals/features/reports/route"
	assignmentroute "ourschool_backend/internals/features/school/assignments/route"
	attendanceroute "ourschool_backend/internals/features/school/attendance/route"
	subjectroute "ourschool_backend/internals/features/school/subjects/route"
	termroute "ourschool_backend/internals/features/school/terms/route"
	apikeyroute "ourschool_backend/internals/features/system/apikeys/route"
	settingsroute "ourschool_backend/internals/features/system/settings/route"
	userroute "ourschool_backend/internals/features/users/route"
	"ourschool_backend/internals/middlewares"
)

// SetupRoutes wires every feature into four groups:
//
//	/api/auth — public (register, login)
//	/api/u    — any authenticated user
//	/api/a    — administrators
//	/api/x    — machine integrations (API key)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	jwt := middlewares.AuthJWT(middlewares.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	userroute.AuthRoutes(app, db)

	user := app.Group("/api/u", jwt)
	userroute.UserRoutes(user, db)
	subjectroute.SubjectUserRoutes(user, db)
	termroute.TermUserRoutes(user, db)
	assignmentroute.AssignmentUserRoutes(user, db)
	attendanceroute.AttendanceUserRoutes(user, db)
	pointsroute.PointsUserRoutes(user, db)
	reportsroute.ReportsUserRoutes(user, db)
	journalroute.JournalUserRoutes(user, db)

	admin := app.Group("/api/a", jwt, middlewares.RequireAdmin())
	userroute.UserAdminRoutes(admin, db)
	subjectroute.SubjectAdminRoutes(admin, db)
	termroute.TermAdminRoutes(admin, db)
	assignmentroute.AssignmentAdminRoutes(admin, db)
	attendanceroute.AttendanceAdminRoutes(admin, db)
	pointsroute.PointsAdminRoutes(admin, db)
	reportsroute.ReportsAdminRoutes(admin, db)
	settingsroute.SettingsAdminRoutes(admin, db)
	apikeyroute.APIKeyAdminRoutes(admin, db)
	backuproute.BackupAdminRoutes(admin, db)

	integration := app.Group("/api/x", middlewares.AuthAPIKey(db))
	assignmentroute.AssignmentIntegrationRoutes(integration, db)
	pointsroute.PointsIntegrationRoutes(integration, db)
}
