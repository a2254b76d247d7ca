package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	lessonModel "afrikstudent_backend/internals/features/academics/lessons/model"
	moduleModel "afrikstudent_backend/internals/features/academics/modules/model"
	"afrikstudent_backend/internals/features/progress/lesson_progress/dto"
	"afrikstudent_backend/internals/features/progress/lesson_progress/model"
)

// LessonProgressService tracks per-student lesson completion. One row per
// (student, lesson); marking twice flips the same row.
type LessonProgressService struct {
	DB *gorm.DB
}

func NewLessonProgressService(db *gorm.DB) *LessonProgressService {
	return &LessonProgressService{DB: db}
}

// MarkCompleted upserts the progress row and stamps completed_at.
func (s *LessonProgressService) MarkCompleted(ctx context.Context, studentID, lessonID uuid.UUID) (dto.LessonProgressDTO, error) {
	return s.mark(ctx, studentID, lessonID, true)
}

// MarkIncomplete clears the completion flag, keeping the row.
func (s *LessonProgressService) MarkIncomplete(ctx context.Context, studentID, lessonID uuid.UUID) (dto.LessonProgressDTO, error) {
	return s.mark(ctx, studentID, lessonID, false)
}

func (s *LessonProgressService) mark(ctx context.Context, studentID, lessonID uuid.UUID, completed bool) (dto.LessonProgressDTO, error) {
	var row model.LessonProgressModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("lesson_id = ?", lessonID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check lesson")
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}

		err := tx.Where("lesson_progress_student_id = ?", studentID).
			Where("lesson_progress_lesson_id = ?", lessonID).
			First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = model.LessonProgressModel{
				LessonProgressStudentID:   studentID,
				LessonProgressLessonID:    lessonID,
				LessonProgressIsCompleted: completed,
			}
			if completed {
				now := time.Now()
				row.LessonProgressCompletedAt = &now
			}
			if err := tx.Create(&row).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to record progress")
			}
			return nil
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load progress")
		}

		updates := map[string]interface{}{"lesson_progress_is_completed": completed}
		if completed {
			updates["lesson_progress_completed_at"] = time.Now()
		} else {
			updates["lesson_progress_completed_at"] = nil
		}
		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update progress")
		}
		return tx.Where("lesson_progress_id = ?", row.LessonProgressID).First(&row).Error
	})
	if err != nil {
		return dto.LessonProgressDTO{}, err
	}
	return dto.ToLessonProgressDTO(row), nil
}

// GetStudentProgress lists every progress row for a student.
func (s *LessonProgressService) GetStudentProgress(ctx context.Context, studentID uuid.UUID) ([]dto.LessonProgressDTO, error) {
	var rows []model.LessonProgressModel
	if err := s.DB.WithContext(ctx).
		Where("lesson_progress_student_id = ?", studentID).
		Order("lesson_progress_updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list progress")
	}

	out := make([]dto.LessonProgressDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToLessonProgressDTO(r))
	}
	return out, nil
}

// GetModuleProgress computes the student's completion within one module.
func (s *LessonProgressService) GetModuleProgress(ctx context.Context, studentID, moduleID uuid.UUID) (dto.ModuleProgressDTO, error) {
	db := s.DB.WithContext(ctx)

	var module moduleModel.ModuleModel
	if err := db.First(&module, "module_id = ?", moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ModuleProgressDTO{}, fiber.NewError(fiber.StatusNotFound, "Module not found")
		}
		return dto.ModuleProgressDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load module")
	}
	return s.moduleProgress(db, studentID, module)
}

// GetFormationProgress aggregates module completion across a formation.
func (s *LessonProgressService) GetFormationProgress(ctx context.Context, studentID, formationID uuid.UUID) (dto.FormationProgressDTO, error) {
	db := s.DB.WithContext(ctx)

	var modules []moduleModel.ModuleModel
	if err := db.Where("module_formation_id = ?", formationID).
		Order("module_order ASC").
		Find(&modules).Error; err != nil {
		return dto.FormationProgressDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load modules")
	}

	out := dto.FormationProgressDTO{
		FormationID: formationID,
		Modules:     make([]dto.ModuleProgressDTO, 0, len(modules)),
	}
	for _, m := range modules {
		mp, err := s.moduleProgress(db, studentID, m)
		if err != nil {
			return dto.FormationProgressDTO{}, err
		}
		out.Modules = append(out.Modules, mp)
		out.TotalLessons += mp.TotalLessons
		out.CompletedLessons += mp.CompletedLessons
	}
	out.CompletionRate = rate(out.CompletedLessons, out.TotalLessons)
	return out, nil
}

func (s *LessonProgressService) moduleProgress(db *gorm.DB, studentID uuid.UUID, module moduleModel.ModuleModel) (dto.ModuleProgressDTO, error) {
	var total int64
	if err := db.Model(&lessonModel.LessonModel{}).
		Where("lesson_module_id = ?", module.ModuleID).
		Count(&total).Error; err != nil {
		return dto.ModuleProgressDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to count lessons")
	}

	var completed int64
	if err := db.Model(&model.LessonProgressModel{}).
		Where("lesson_progress_student_id = ?", studentID).
		Where("lesson_progress_is_completed = ?", true).
		Where("lesson_progress_lesson_id IN (?)",
			db.Model(&lessonModel.LessonModel{}).
				Select("lesson_id").
				Where("lesson_module_id = ?", module.ModuleID)).
		Count(&completed).Error; err != nil {
		return dto.ModuleProgressDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to count progress")
	}

	return dto.ModuleProgressDTO{
		ModuleID:         module.ModuleID,
		ModuleTitle:      module.ModuleTitle,
		TotalLessons:     total,
		CompletedLessons: completed,
		CompletionRate:   rate(completed, total),
	}, nil
}

func rate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
