package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/users/users/dto"
	"afrikstudent_backend/internals/features/users/users/service"
	helper "afrikstudent_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// ============================
// CREATE /api/users
// ============================
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.CreateUser(c.Context(), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] user created: %s (%s)", user.UserID, user.UserRole)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created successfully", user)
}

// ============================
// GET /api/users
// ============================
func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, helper.AdminOpts)

	var role *string
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role = &raw
	}

	users, total, err := ctrl.Service.GetAllUsers(c.Context(), role, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Users fetched successfully", fiber.Map{
		"users":      users,
		"pagination": p.Meta(total),
	})
}

// ============================
// GET /api/users/:id
// ============================
func (ctrl *UserController) GetUserByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := ctrl.Service.GetUserByID(c.Context(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "User fetched successfully", user)
}

// ============================
// PUT /api/users/:id
// ============================
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.UpdateUser(c.Context(), id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] user updated: %s", id)
	return helper.Success(c, "User updated successfully", user)
}

// ============================
// DELETE /api/users/:id
// ============================
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := ctrl.Service.DeleteUser(c.Context(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] user deleted: %s", id)
	return helper.Success(c, "User deleted successfully", nil)
}
