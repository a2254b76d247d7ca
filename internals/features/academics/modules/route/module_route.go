package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	moduleController "afrikstudent_backend/internals/features/academics/modules/controller"
	moduleService "afrikstudent_backend/internals/features/academics/modules/service"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

func ModuleRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := moduleController.NewModuleController(moduleService.NewModuleService(db))

	modules := api.Group("/modules")
	modules.Get("/", ctrl.GetAllModules)
	modules.Get("/:id", ctrl.GetModuleByID)

	write := modules.Group("/", authMiddleware.RequireRoles(constants.AdminAndInstructor...))
	write.Post("/", ctrl.CreateModule)
	write.Put("/:id", ctrl.UpdateModule)
	write.Delete("/:id", ctrl.DeleteModule)
}
