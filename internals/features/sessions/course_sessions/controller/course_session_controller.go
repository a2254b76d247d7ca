package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/sessions/course_sessions/dto"
	"afrikstudent_backend/internals/features/sessions/course_sessions/service"
	helper "afrikstudent_backend/internals/helpers"
)

var validate = validator.New()

type CourseSessionController struct {
	Service *service.CourseSessionService
}

func NewCourseSessionController(svc *service.CourseSessionService) *CourseSessionController {
	return &CourseSessionController{Service: svc}
}

// ============================
// CREATE /api/course-sessions
// ============================
func (ctrl *CourseSessionController) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateCourseSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	session, err := ctrl.Service.CreateSession(c.Context(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] course session created: %s", session.CourseSessionID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course session created successfully", session)
}

// ============================
// GET /api/course-sessions
// ============================
func (ctrl *CourseSessionController) GetAllSessions(c *fiber.Ctx) error {
	p := helper.ParsePagination(c)

	var filter service.SessionFilter
	if raw := strings.TrimSpace(c.Query("formation_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid formation_id")
		}
		filter.FormationID = &id
	}
	if raw := strings.TrimSpace(c.Query("instructor_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid instructor_id")
		}
		filter.InstructorID = &id
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		filter.Status = &raw
	}

	sessions, total, err := ctrl.Service.GetAllSessions(c.Context(), filter, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Course sessions fetched successfully", fiber.Map{
		"course_sessions": sessions,
		"pagination":      p.Meta(total),
	})
}

// ============================
// GET /api/course-sessions/available
// ============================
func (ctrl *CourseSessionController) GetAvailableSessions(c *fiber.Ctx) error {
	sessions, err := ctrl.Service.GetAvailableSessions(c.Context())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Available course sessions fetched successfully", fiber.Map{
		"course_sessions": sessions,
	})
}

// ============================
// GET /api/course-sessions/:id
// ============================
func (ctrl *CourseSessionController) GetSessionByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course session ID")
	}

	session, err := ctrl.Service.GetSessionByID(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Course session fetched successfully", session)
}

// ============================
// PUT /api/course-sessions/:id
// ============================
func (ctrl *CourseSessionController) UpdateSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course session ID")
	}

	var req dto.UpdateCourseSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	session, err := ctrl.Service.UpdateSession(c.Context(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] course session updated: %s", id)
	return helper.Success(c, "Course session updated successfully", session)
}

// ============================
// DELETE /api/course-sessions/:id
// ============================
func (ctrl *CourseSessionController) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course session ID")
	}

	if err := ctrl.Service.DeleteSession(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] course session deleted: %s", id)
	return helper.Success(c, "Course session deleted successfully", nil)
}

// ============================
// GET /api/course-sessions/:id/students
// ============================
func (ctrl *CourseSessionController) GetSessionStudents(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course session ID")
	}

	students, err := ctrl.Service.GetSessionStudents(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Session students fetched successfully", fiber.Map{
		"students": students,
	})
}

// ============================
// GET /api/course-sessions/:id/available-students
// ============================
func (ctrl *CourseSessionController) GetAvailableStudents(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course session ID")
	}

	students, err := ctrl.Service.GetAvailableStudents(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Available students fetched successfully", fiber.Map{
		"students": students,
	})
}

// ============================
// POST /api/course-sessions/:id/module-instructors
// ============================
func (ctrl *CourseSessionController) AssignModuleInstructor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course session ID")
	}

	var req dto.AssignModuleInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	assignment, err := ctrl.Service.AssignModuleInstructor(c.Context(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] module instructor assigned: %s", assignment.ModuleSessionInstructorID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Module instructor assigned successfully", assignment)
}

// ============================
// DELETE /api/module-instructors/:id
// ============================
func (ctrl *CourseSessionController) EndModuleInstructorAssignment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment ID")
	}

	if err := ctrl.Service.EndModuleInstructorAssignment(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] module instructor assignment ended: %s", id)
	return helper.Success(c, "Module instructor assignment ended successfully", nil)
}
