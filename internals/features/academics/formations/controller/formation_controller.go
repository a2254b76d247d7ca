package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/features/academics/formations/dto"
	"afrikstudent_backend/internals/features/academics/formations/model"
	lessonModel "afrikstudent_backend/internals/features/academics/lessons/model"
	moduleDTO "afrikstudent_backend/internals/features/academics/modules/dto"
	moduleModel "afrikstudent_backend/internals/features/academics/modules/model"
	helper "afrikstudent_backend/internals/helpers"
)

var validate = validator.New()

type FormationController struct {
	DB *gorm.DB
}

func NewFormationController(db *gorm.DB) *FormationController {
	return &FormationController{DB: db}
}

// ============================
// CREATE /api/formations
// ============================
func (ctrl *FormationController) CreateFormation(c *fiber.Ctx) error {
	var req dto.CreateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	formation := model.FormationModel{
		FormationTitle:       req.FormationTitle,
		FormationDescription: req.FormationDescription,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&formation).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create formation")
	}

	log.Printf("[SUCCESS] formation created: %s", formation.FormationID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Formation created successfully",
		dto.ToFormationDTO(formation, nil))
}

// ============================
// GET /api/formations
// ============================
func (ctrl *FormationController) GetAllFormations(c *fiber.Ctx) error {
	p := helper.ParsePagination(c)
	db := ctrl.DB.WithContext(c.Context())

	var total int64
	if err := db.Model(&model.FormationModel{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count formations")
	}

	var formations []model.FormationModel
	if err := db.Order("formation_created_at DESC").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&formations).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list formations")
	}

	out := make([]dto.FormationDTO, 0, len(formations))
	for _, f := range formations {
		out = append(out, dto.ToFormationDTO(f, nil))
	}
	return helper.Success(c, "Formations fetched successfully", fiber.Map{
		"formations": out,
		"pagination": p.Meta(total),
	})
}

// ============================
// GET /api/formations/:id
// ============================
func (ctrl *FormationController) GetFormationByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid formation ID")
	}
	db := ctrl.DB.WithContext(c.Context())

	var formation model.FormationModel
	if err := db.First(&formation, "formation_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Formation not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load formation")
	}

	var modules []moduleModel.ModuleModel
	if err := db.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order ASC")
		}).
		Preload("Lessons.Attachments").
		Where("module_formation_id = ?", id).
		Order("module_order ASC, module_created_at ASC").
		Find(&modules).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load modules")
	}

	mods := make([]moduleDTO.ModuleDTO, 0, len(modules))
	for _, m := range modules {
		mods = append(mods, moduleDTO.ToModuleDTO(m))
	}
	return helper.Success(c, "Formation fetched successfully", dto.ToFormationDTO(formation, mods))
}

// ============================
// PUT /api/formations/:id
// ============================
func (ctrl *FormationController) UpdateFormation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid formation ID")
	}

	var req dto.UpdateFormationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var formation model.FormationModel
	if err := db.First(&formation, "formation_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Formation not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load formation")
	}

	updates := map[string]interface{}{}
	if req.FormationTitle != nil {
		updates["formation_title"] = *req.FormationTitle
	}
	if req.FormationDescription != nil {
		updates["formation_description"] = *req.FormationDescription
	}
	if len(updates) > 0 {
		if err := db.Model(&formation).Updates(updates).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to update formation")
		}
	}

	log.Printf("[SUCCESS] formation updated: %s", id)
	return helper.Success(c, "Formation updated successfully", dto.ToFormationDTO(formation, nil))
}

// ============================
// DELETE /api/formations/:id
// ============================
// Deleting a formation removes its modules; the modules' lessons are kept
// and left unassigned.
func (ctrl *FormationController) DeleteFormation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid formation ID")
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var formation model.FormationModel
		if err := tx.First(&formation, "formation_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Formation not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load formation")
		}

		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("lesson_module_id IN (?)",
				tx.Model(&moduleModel.ModuleModel{}).
					Select("module_id").
					Where("module_formation_id = ?", id)).
			Update("lesson_module_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to detach lessons")
		}

		if err := tx.Delete(&moduleModel.ModuleModel{}, "module_formation_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete modules")
		}
		if err := tx.Delete(&model.FormationModel{}, "formation_id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete formation")
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[SUCCESS] formation deleted: %s", id)
	return helper.Success(c, "Formation deleted successfully", nil)
}
