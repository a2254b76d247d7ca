package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formationModel "afrikstudent_backend/internals/features/academics/formations/model"
	lessonModel "afrikstudent_backend/internals/features/academics/lessons/model"
	"afrikstudent_backend/internals/features/academics/modules/dto"
	"afrikstudent_backend/internals/features/academics/modules/model"
	helper "afrikstudent_backend/internals/helpers"
)

// ModuleService manages modules and the lessons nested inside their
// payloads. Removing a lesson from a module never deletes the lesson row;
// it only clears lesson_module_id, so the lesson survives as unassigned.
type ModuleService struct {
	DB *gorm.DB
}

func NewModuleService(db *gorm.DB) *ModuleService {
	return &ModuleService{DB: db}
}

// CreateModule creates the module and its nested lessons atomically. A
// nested lesson carrying an id is pulled into this module even if it
// currently belongs to another one; without an id a new lesson is created.
func (s *ModuleService) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (dto.ModuleDTO, error) {
	var created model.ModuleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureFormationExists(tx, req.ModuleFormationID); err != nil {
			return err
		}

		created = model.ModuleModel{
			ModuleTitle:       req.ModuleTitle,
			ModuleDescription: req.ModuleDescription,
			ModuleOrder:       req.ModuleOrder,
			ModuleFormationID: req.ModuleFormationID,
		}
		if created.ModuleOrder == 0 {
			created.ModuleOrder = 1
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create module")
		}

		return applyNestedLessons(tx, created.ModuleID, req.Lessons)
	})
	if err != nil {
		return dto.ModuleDTO{}, err
	}
	return s.GetModuleByID(ctx, created.ModuleID)
}

// UpdateModule applies, in order: lesson detachments, scalar updates, then
// nested lesson reassignment/creation. Order matters when one call moves a
// lesson out and pulls another in.
func (s *ModuleService) UpdateModule(ctx context.Context, moduleID uuid.UUID, req dto.UpdateModuleRequest) (dto.ModuleDTO, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var module model.ModuleModel
		if err := tx.First(&module, "module_id = ?", moduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Module not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load module")
		}

		// 1) detach first
		if len(req.DeleteLessons) > 0 {
			if err := tx.Model(&lessonModel.LessonModel{}).
				Where("lesson_id IN ?", req.DeleteLessons).
				Where("lesson_module_id = ?", moduleID).
				Update("lesson_module_id", nil).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to detach lessons")
			}
		}

		// 2) scalar updates
		updates := map[string]interface{}{}
		if req.ModuleTitle != nil {
			updates["module_title"] = *req.ModuleTitle
		}
		if req.ModuleDescription != nil {
			updates["module_description"] = *req.ModuleDescription
		}
		if req.ModuleOrder != nil {
			updates["module_order"] = *req.ModuleOrder
		}
		if req.ModuleFormationID != nil {
			if err := ensureFormationExists(tx, *req.ModuleFormationID); err != nil {
				return err
			}
			updates["module_formation_id"] = *req.ModuleFormationID
		}
		if len(updates) > 0 {
			if err := tx.Model(&module).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update module")
			}
		}

		// 3) nested lessons
		return applyNestedLessons(tx, moduleID, req.Lessons)
	})
	if err != nil {
		return dto.ModuleDTO{}, err
	}
	return s.GetModuleByID(ctx, moduleID)
}

// DeleteModule detaches every lesson, then removes the module. Lessons are
// kept.
func (s *ModuleService) DeleteModule(ctx context.Context, moduleID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var module model.ModuleModel
		if err := tx.First(&module, "module_id = ?", moduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Module not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load module")
		}

		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("lesson_module_id = ?", moduleID).
			Update("lesson_module_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to detach lessons")
		}

		if err := tx.Delete(&model.ModuleModel{}, "module_id = ?", moduleID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete module")
		}
		return nil
	})
}

// GetModuleByID loads one module with its formation, ordered lessons and
// their attachments.
func (s *ModuleService) GetModuleByID(ctx context.Context, moduleID uuid.UUID) (dto.ModuleDTO, error) {
	var module model.ModuleModel
	err := s.DB.WithContext(ctx).
		Preload("Formation").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order ASC")
		}).
		Preload("Lessons.Attachments").
		First(&module, "module_id = ?", moduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ModuleDTO{}, fiber.NewError(fiber.StatusNotFound, "Module not found")
		}
		return dto.ModuleDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load module")
	}
	return dto.ToModuleDTO(module), nil
}

// GetAllModules lists modules, optionally filtered by formation, paginated.
func (s *ModuleService) GetAllModules(ctx context.Context, formationID *uuid.UUID, p helper.PaginationParams) ([]dto.ModuleDTO, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.ModuleModel{})
	if formationID != nil {
		db = db.Where("module_formation_id = ?", *formationID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count modules")
	}

	var modules []model.ModuleModel
	if err := db.
		Preload("Formation").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order ASC")
		}).
		Preload("Lessons.Attachments").
		Order("module_order ASC, module_created_at ASC").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&modules).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list modules")
	}

	out := make([]dto.ModuleDTO, 0, len(modules))
	for _, m := range modules {
		out = append(out, dto.ToModuleDTO(m))
	}
	return out, total, nil
}

/* =======================================================================
   internals
======================================================================= */

func ensureFormationExists(tx *gorm.DB, formationID uuid.UUID) error {
	var count int64
	if err := tx.Model(&formationModel.FormationModel{}).
		Where("formation_id = ?", formationID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check formation")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Formation not found")
	}
	return nil
}

func applyNestedLessons(tx *gorm.DB, moduleID uuid.UUID, lessons []dto.NestedLessonInput) error {
	for _, in := range lessons {
		if in.ID != nil {
			var lesson lessonModel.LessonModel
			if err := tx.First(&lesson, "lesson_id = ?", *in.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
			}

			updates := map[string]interface{}{"lesson_module_id": moduleID}
			if in.LessonTitle != "" {
				updates["lesson_title"] = in.LessonTitle
			}
			if in.LessonContent != nil {
				updates["lesson_content"] = *in.LessonContent
			}
			if in.LessonOrder != nil {
				updates["lesson_order"] = *in.LessonOrder
			}
			if err := tx.Model(&lesson).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to reassign lesson")
			}
			continue
		}

		created := lessonModel.LessonModel{
			LessonTitle:    in.LessonTitle,
			LessonContent:  in.LessonContent,
			LessonOrder:    in.LessonOrder,
			LessonModuleID: &moduleID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create lesson")
		}
	}
	return nil
}
