package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	lessonController "afrikstudent_backend/internals/features/academics/lessons/controller"
	lessonService "afrikstudent_backend/internals/features/academics/lessons/service"
	ossHelper "afrikstudent_backend/internals/helpers/oss"
	"afrikstudent_backend/internals/middlewares"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

// LessonRoutes mounts lesson CRUD plus the instructor lesson listing.
func LessonRoutes(api fiber.Router, db *gorm.DB, blob ossHelper.BlobService) {
	store := lessonService.NewAttachmentStore(blob)
	ctrl := lessonController.NewLessonController(lessonService.NewLessonService(db, store))

	lessons := api.Group("/lessons")
	lessons.Get("/", ctrl.GetAllLessons)
	lessons.Get("/:id", ctrl.GetLessonByID)

	write := lessons.Group("/",
		authMiddleware.RequireRoles(constants.AdminAndInstructor...),
		middlewares.UploadRateLimiter(),
	)
	write.Post("/", ctrl.CreateLesson)
	write.Put("/:id", ctrl.UpdateLesson)
	write.Delete("/:id", ctrl.DeleteLesson)

	instructor := api.Group("/instructor",
		authMiddleware.RequireRoles(constants.RoleInstructor, constants.RoleAdmin),
	)
	instructor.Get("/lessons", ctrl.GetInstructorLessons)
}
