package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	formationRoute "afrikstudent_backend/internals/features/academics/formations/route"
	lessonRoute "afrikstudent_backend/internals/features/academics/lessons/route"
	moduleRoute "afrikstudent_backend/internals/features/academics/modules/route"
	progressRoute "afrikstudent_backend/internals/features/progress/lesson_progress/route"
	sessionRoute "afrikstudent_backend/internals/features/sessions/course_sessions/route"
	enrollmentRoute "afrikstudent_backend/internals/features/sessions/enrollments/route"
	userRoute "afrikstudent_backend/internals/features/users/users/route"
	ossHelper "afrikstudent_backend/internals/helpers/oss"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under /api. All routes require a valid
// token; per-route role checks sit on the write endpoints.
func SetupRoutes(app *fiber.App, db *gorm.DB, blob ossHelper.BlobService) {
	api := app.Group("/api", authMiddleware.AuthMiddleware())

	formationRoute.FormationRoutes(api, db)
	moduleRoute.ModuleRoutes(api, db)
	lessonRoute.LessonRoutes(api, db, blob)
	sessionRoute.CourseSessionRoutes(api, db)
	enrollmentRoute.EnrollmentRoutes(api, db)
	progressRoute.ProgressRoutes(api, db)
	userRoute.UserRoutes(api, db)
}
