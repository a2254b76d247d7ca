package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/academics/modules/dto"
	"afrikstudent_backend/internals/features/academics/modules/service"
	helper "afrikstudent_backend/internals/helpers"
)

var validate = validator.New()

type ModuleController struct {
	Service *service.ModuleService
}

func NewModuleController(svc *service.ModuleService) *ModuleController {
	return &ModuleController{Service: svc}
}

// ============================
// CREATE /api/modules
// ============================
func (ctrl *ModuleController) CreateModule(c *fiber.Ctx) error {
	var req dto.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	module, err := ctrl.Service.CreateModule(c.Context(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] module created: %s", module.ModuleID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Module created successfully", module)
}

// ============================
// GET /api/modules
// ============================
func (ctrl *ModuleController) GetAllModules(c *fiber.Ctx) error {
	p := helper.ParsePagination(c)

	var formationID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("formation_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid formation_id")
		}
		formationID = &id
	}

	modules, total, err := ctrl.Service.GetAllModules(c.Context(), formationID, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Modules fetched successfully", fiber.Map{
		"modules":    modules,
		"pagination": p.Meta(total),
	})
}

// ============================
// GET /api/modules/:id
// ============================
func (ctrl *ModuleController) GetModuleByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid module ID")
	}

	module, err := ctrl.Service.GetModuleByID(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Module fetched successfully", module)
}

// ============================
// PUT /api/modules/:id
// ============================
func (ctrl *ModuleController) UpdateModule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid module ID")
	}

	var req dto.UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	module, err := ctrl.Service.UpdateModule(c.Context(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] module updated: %s", module.ModuleID)
	return helper.Success(c, "Module updated successfully", module)
}

// ============================
// DELETE /api/modules/:id
// ============================
func (ctrl *ModuleController) DeleteModule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid module ID")
	}

	if err := ctrl.Service.DeleteModule(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] module deleted: %s", id)
	return helper.Success(c, "Module deleted successfully", nil)
}
