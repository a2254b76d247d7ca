package controller

import (
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/academics/lessons/dto"
	"afrikstudent_backend/internals/features/academics/lessons/service"
	helper "afrikstudent_backend/internals/helpers"
	ossHelper "afrikstudent_backend/internals/helpers/oss"
)

var validate = validator.New()

type LessonController struct {
	Service *service.LessonService
}

func NewLessonController(svc *service.LessonService) *LessonController {
	return &LessonController{Service: svc}
}

// ============================
// CREATE /api/lessons
// ============================
func (ctrl *LessonController) CreateLesson(c *fiber.Ctx) error {
	req, files, err := parseCreatePayload(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	lesson, err := ctrl.Service.CreateLesson(c.Context(), req, files)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] lesson created: %s", lesson.LessonID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson created successfully", lesson)
}

// ============================
// GET /api/lessons
// ============================
func (ctrl *LessonController) GetAllLessons(c *fiber.Ctx) error {
	p := helper.ParsePagination(c)

	lessons, total, err := ctrl.Service.GetAllLessons(c.Context(), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Lessons fetched successfully", fiber.Map{
		"lessons":    lessons,
		"pagination": p.Meta(total),
	})
}

// ============================
// GET /api/lessons/:id
// ============================
func (ctrl *LessonController) GetLessonByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	lesson, err := ctrl.Service.GetLessonByID(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Lesson fetched successfully", lesson)
}

// ============================
// PUT /api/lessons/:id
// ============================
func (ctrl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	req, files, err := parseUpdatePayload(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	lesson, err := ctrl.Service.UpdateLesson(c.Context(), id, req, files)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] lesson updated: %s", lesson.LessonID)
	return helper.Success(c, "Lesson updated successfully", lesson)
}

// ============================
// DELETE /api/lessons/:id
// ============================
func (ctrl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	if err := ctrl.Service.DeleteLesson(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] lesson deleted: %s", id)
	return helper.Success(c, "Lesson deleted successfully", nil)
}

// ============================
// GET /api/instructor/lessons
// ============================
func (ctrl *LessonController) GetInstructorLessons(c *fiber.Ctx) error {
	instructorID, err := instructorIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sessionID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("course_session_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid course_session_id")
		}
		sessionID = &id
	}

	lessons, err := ctrl.Service.GetInstructorLessons(c.Context(), instructorID, sessionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Instructor lessons fetched successfully", fiber.Map{
		"lessons": lessons,
	})
}

/* =======================================================================
   payload parsing (JSON or multipart)
======================================================================= */

func parseCreatePayload(c *fiber.Ctx) (dto.CreateLessonRequest, []*multipart.FileHeader, error) {
	var req dto.CreateLessonRequest

	if !ossHelper.IsMultipart(c) {
		if err := c.BodyParser(&req); err != nil {
			return req, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		return req, nil, nil
	}

	req.LessonTitle = strings.TrimSpace(c.FormValue("lesson_title"))
	if v := c.FormValue("lesson_content"); v != "" {
		req.LessonContent = &v
	}
	order, err := formInt(c, "lesson_order")
	if err != nil {
		return req, nil, err
	}
	req.LessonOrder = order
	moduleID, err := formUUID(c, "lesson_module_id")
	if err != nil {
		return req, nil, err
	}
	req.LessonModuleID = moduleID

	links, err := formExternalLinks(c)
	if err != nil {
		return req, nil, err
	}
	req.ExternalLinks = links

	files, err := formFiles(c)
	return req, files, err
}

func parseUpdatePayload(c *fiber.Ctx) (dto.UpdateLessonRequest, []*multipart.FileHeader, error) {
	var req dto.UpdateLessonRequest

	if !ossHelper.IsMultipart(c) {
		if err := c.BodyParser(&req); err != nil {
			return req, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		return req, nil, nil
	}

	if v := c.FormValue("lesson_title"); v != "" {
		t := strings.TrimSpace(v)
		req.LessonTitle = &t
	}
	if v := c.FormValue("lesson_content"); v != "" {
		req.LessonContent = &v
	}
	order, err := formInt(c, "lesson_order")
	if err != nil {
		return req, nil, err
	}
	req.LessonOrder = order
	moduleID, err := formUUID(c, "lesson_module_id")
	if err != nil {
		return req, nil, err
	}
	req.LessonModuleID = moduleID

	links, err := formExternalLinks(c)
	if err != nil {
		return req, nil, err
	}
	req.ExternalLinks = links

	ids, err := formUUIDList(c, "delete_attachments")
	if err != nil {
		return req, nil, err
	}
	req.DeleteAttachments = ids

	files, err := formFiles(c)
	return req, files, err
}

func formFiles(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}
	return form.File["attachments"], nil
}

// external_links arrives as a JSON array in its own form field.
func formExternalLinks(c *fiber.Ctx) ([]dto.ExternalLinkInput, error) {
	raw := strings.TrimSpace(c.FormValue("external_links"))
	if raw == "" {
		return nil, nil
	}
	var links []dto.ExternalLinkInput
	if err := sonic.Unmarshal([]byte(raw), &links); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "external_links must be a JSON array")
	}
	return links, nil
}

// delete_attachments is either a JSON array field or repeated
// delete_attachments[] values.
func formUUIDList(c *fiber.Ctx, field string) ([]uuid.UUID, error) {
	if raw := strings.TrimSpace(c.FormValue(field)); raw != "" {
		var ids []uuid.UUID
		if err := sonic.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, field+" must be a JSON array of UUIDs")
		}
		return ids, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var ids []uuid.UUID
	for _, raw := range form.Value[field+"[]"] {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid UUID in "+field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formInt(c *fiber.Ctx, field string) (*int, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, field+" must be an integer")
	}
	return &n, nil
}

func formUUID(c *fiber.Ctx, field string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, field+" must be a valid UUID")
	}
	return &id, nil
}

func instructorIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
