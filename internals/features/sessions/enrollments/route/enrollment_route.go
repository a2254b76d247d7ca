package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	enrollmentController "afrikstudent_backend/internals/features/sessions/enrollments/controller"
	enrollmentService "afrikstudent_backend/internals/features/sessions/enrollments/service"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

func EnrollmentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := enrollmentController.NewEnrollmentController(enrollmentService.NewEnrollmentService(db))

	enrollments := api.Group("/enrollments", authMiddleware.RequireRoles(constants.AdminOnly...))
	enrollments.Post("/", ctrl.CreateEnrollment)
	enrollments.Get("/", ctrl.GetAllEnrollments)
	enrollments.Post("/bulk-unenroll", ctrl.BulkUnenroll)
	enrollments.Get("/:id", ctrl.GetEnrollmentByID)
	enrollments.Put("/:id", ctrl.UpdateEnrollment)
	enrollments.Post("/:id/confirm", ctrl.ConfirmEnrollment)
	enrollments.Post("/:id/cancel", ctrl.CancelEnrollment)
	enrollments.Delete("/:id", ctrl.DeleteEnrollment)
}
