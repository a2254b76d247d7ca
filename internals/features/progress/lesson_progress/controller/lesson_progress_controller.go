package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/progress/lesson_progress/service"
	helper "afrikstudent_backend/internals/helpers"
)

type LessonProgressController struct {
	Service *service.LessonProgressService
}

func NewLessonProgressController(svc *service.LessonProgressService) *LessonProgressController {
	return &LessonProgressController{Service: svc}
}

// ============================
// POST /api/progress/lessons/:lesson_id/complete
// ============================
func (ctrl *LessonProgressController) MarkCompleted(c *fiber.Ctx) error {
	studentID, err := studentIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lessonID, err := uuid.Parse(c.Params("lesson_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	progress, err := ctrl.Service.MarkCompleted(c.Context(), studentID, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] lesson completed: %s by %s", lessonID, studentID)
	return helper.Success(c, "Lesson marked as completed", progress)
}

// ============================
// POST /api/progress/lessons/:lesson_id/incomplete
// ============================
func (ctrl *LessonProgressController) MarkIncomplete(c *fiber.Ctx) error {
	studentID, err := studentIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lessonID, err := uuid.Parse(c.Params("lesson_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	progress, err := ctrl.Service.MarkIncomplete(c.Context(), studentID, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Lesson marked as incomplete", progress)
}

// ============================
// GET /api/progress/me
// ============================
func (ctrl *LessonProgressController) GetMyProgress(c *fiber.Ctx) error {
	studentID, err := studentIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	progress, err := ctrl.Service.GetStudentProgress(c.Context(), studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Progress fetched successfully", fiber.Map{
		"progress": progress,
	})
}

// ============================
// GET /api/progress/modules/:module_id
// ============================
func (ctrl *LessonProgressController) GetModuleProgress(c *fiber.Ctx) error {
	studentID, err := studentIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	moduleID, err := uuid.Parse(c.Params("module_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid module ID")
	}

	progress, err := ctrl.Service.GetModuleProgress(c.Context(), studentID, moduleID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Module progress fetched successfully", progress)
}

// ============================
// GET /api/progress/formations/:formation_id
// ============================
func (ctrl *LessonProgressController) GetFormationProgress(c *fiber.Ctx) error {
	studentID, err := studentIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	formationID, err := uuid.Parse(c.Params("formation_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid formation ID")
	}

	progress, err := ctrl.Service.GetFormationProgress(c.Context(), studentID, formationID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Formation progress fetched successfully", progress)
}

func studentIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
