package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	progressController "afrikstudent_backend/internals/features/progress/lesson_progress/controller"
	progressService "afrikstudent_backend/internals/features/progress/lesson_progress/service"
)

// ProgressRoutes mounts lesson completion tracking. All routes require an
// authenticated user; the student id comes from the token.
func ProgressRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := progressController.NewLessonProgressController(progressService.NewLessonProgressService(db))

	progress := api.Group("/progress")
	progress.Get("/me", ctrl.GetMyProgress)
	progress.Post("/lessons/:lesson_id/complete", ctrl.MarkCompleted)
	progress.Post("/lessons/:lesson_id/incomplete", ctrl.MarkIncomplete)
	progress.Get("/modules/:module_id", ctrl.GetModuleProgress)
	progress.Get("/formations/:formation_id", ctrl.GetFormationProgress)
}
