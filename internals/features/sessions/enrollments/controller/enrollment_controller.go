package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/sessions/enrollments/dto"
	"afrikstudent_backend/internals/features/sessions/enrollments/service"
	helper "afrikstudent_backend/internals/helpers"
)

var validate = validator.New()

type EnrollmentController struct {
	Service *service.EnrollmentService
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Service: svc}
}

// ============================
// CREATE /api/enrollments
// ============================
func (ctrl *EnrollmentController) CreateEnrollment(c *fiber.Ctx) error {
	var req dto.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	enrollment, err := ctrl.Service.CreateEnrollment(c.Context(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] enrollment created: %s", enrollment.EnrollmentID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Enrollment created successfully", enrollment)
}

// ============================
// GET /api/enrollments
// ============================
func (ctrl *EnrollmentController) GetAllEnrollments(c *fiber.Ctx) error {
	p := helper.ParsePagination(c)

	var filter service.EnrollmentFilter
	if raw := strings.TrimSpace(c.Query("student_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid student_id")
		}
		filter.StudentID = &id
	}
	if raw := strings.TrimSpace(c.Query("course_session_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid course_session_id")
		}
		filter.CourseSessionID = &id
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		filter.Status = &raw
	}

	enrollments, total, err := ctrl.Service.GetAllEnrollments(c.Context(), filter, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Enrollments fetched successfully", fiber.Map{
		"enrollments": enrollments,
		"pagination":  p.Meta(total),
	})
}

// ============================
// GET /api/enrollments/:id
// ============================
func (ctrl *EnrollmentController) GetEnrollmentByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	enrollment, err := ctrl.Service.GetEnrollmentByID(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Enrollment fetched successfully", enrollment)
}

// ============================
// PUT /api/enrollments/:id
// ============================
func (ctrl *EnrollmentController) UpdateEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	var req dto.UpdateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	enrollment, err := ctrl.Service.UpdateEnrollment(c.Context(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] enrollment updated: %s", id)
	return helper.Success(c, "Enrollment updated successfully", enrollment)
}

// ============================
// POST /api/enrollments/:id/confirm
// ============================
func (ctrl *EnrollmentController) ConfirmEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	enrollment, err := ctrl.Service.ConfirmEnrollment(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] enrollment confirmed: %s", id)
	return helper.Success(c, "Enrollment confirmed successfully", enrollment)
}

// ============================
// POST /api/enrollments/:id/cancel
// ============================
func (ctrl *EnrollmentController) CancelEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	enrollment, err := ctrl.Service.CancelEnrollment(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] enrollment cancelled: %s", id)
	return helper.Success(c, "Enrollment cancelled successfully", enrollment)
}

// ============================
// DELETE /api/enrollments/:id
// ============================
func (ctrl *EnrollmentController) DeleteEnrollment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	if err := ctrl.Service.DeleteEnrollment(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] enrollment deleted: %s", id)
	return helper.Success(c, "Enrollment deleted successfully", nil)
}

// ============================
// POST /api/enrollments/bulk-unenroll
// ============================
func (ctrl *EnrollmentController) BulkUnenroll(c *fiber.Ctx) error {
	var req dto.BulkUnenrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	removed, err := ctrl.Service.BulkUnenroll(c.Context(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] bulk unenroll: %d removed from %s", removed, req.CourseSessionID)
	return helper.Success(c, "Students unenrolled successfully", fiber.Map{
		"removed": removed,
	})
}
