package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	userController "afrikstudent_backend/internals/features/users/users/controller"
	userService "afrikstudent_backend/internals/features/users/users/service"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(userService.NewUserService(db))

	users := api.Group("/users", authMiddleware.RequireRoles(constants.AdminOnly...))
	users.Post("/", ctrl.CreateUser)
	users.Get("/", ctrl.GetAllUsers)
	users.Get("/:id", ctrl.GetUserByID)
	users.Put("/:id", ctrl.UpdateUser)
	users.Delete("/:id", ctrl.DeleteUser)
}
