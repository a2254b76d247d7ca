package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	sessionController "afrikstudent_backend/internals/features/sessions/course_sessions/controller"
	sessionService "afrikstudent_backend/internals/features/sessions/course_sessions/service"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

func CourseSessionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := sessionController.NewCourseSessionController(sessionService.NewCourseSessionService(db))

	sessions := api.Group("/course-sessions")
	sessions.Get("/", ctrl.GetAllSessions)
	sessions.Get("/available", ctrl.GetAvailableSessions)
	sessions.Get("/:id", ctrl.GetSessionByID)
	sessions.Get("/:id/students",
		authMiddleware.RequireRoles(constants.AdminAndInstructor...), ctrl.GetSessionStudents)
	sessions.Get("/:id/available-students",
		authMiddleware.RequireRoles(constants.AdminOnly...), ctrl.GetAvailableStudents)

	admin := sessions.Group("/", authMiddleware.RequireRoles(constants.AdminOnly...))
	admin.Post("/", ctrl.CreateSession)
	admin.Put("/:id", ctrl.UpdateSession)
	admin.Delete("/:id", ctrl.DeleteSession)
	admin.Post("/:id/module-instructors", ctrl.AssignModuleInstructor)

	api.Delete("/module-instructors/:id",
		authMiddleware.RequireRoles(constants.AdminOnly...), ctrl.EndModuleInstructorAssignment)
}
