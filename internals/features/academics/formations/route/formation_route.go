package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/constants"
	formationController "afrikstudent_backend/internals/features/academics/formations/controller"
	authMiddleware "afrikstudent_backend/internals/middlewares/auth"
)

func FormationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := formationController.NewFormationController(db)

	formations := api.Group("/formations")
	formations.Get("/", ctrl.GetAllFormations)
	formations.Get("/:id", ctrl.GetFormationByID)

	write := formations.Group("/", authMiddleware.RequireRoles(constants.AdminOnly...))
	write.Post("/", ctrl.CreateFormation)
	write.Put("/:id", ctrl.UpdateFormation)
	write.Delete("/:id", ctrl.DeleteFormation)
}
