package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/features/academics/lessons/dto"
	"afrikstudent_backend/internals/features/academics/lessons/model"
	moduleModel "afrikstudent_backend/internals/features/academics/modules/model"
	sessionModel "afrikstudent_backend/internals/features/sessions/course_sessions/model"
	helper "afrikstudent_backend/internals/helpers"
)

// LessonService orchestrates lesson writes together with their attachments
// and external links. Every mutation runs in a single DB transaction; a
// concurrent reader never observes a lesson with only part of its
// attachments.
type LessonService struct {
	DB    *gorm.DB
	Store *AttachmentStore
}

func NewLessonService(db *gorm.DB, store *AttachmentStore) *LessonService {
	return &LessonService{DB: db, Store: store}
}

// CreateLesson creates the lesson row plus its uploaded files and external
// links atomically. On rollback, blobs already written to storage are
// best-effort deleted.
func (s *LessonService) CreateLesson(ctx context.Context, req dto.CreateLessonRequest, files []*multipart.FileHeader) (dto.LessonDTO, error) {
	if err := ValidateUploads(files); err != nil {
		return dto.LessonDTO{}, err
	}

	var (
		created     model.LessonModel
		writtenKeys []string
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.LessonModuleID != nil {
			if err := ensureModuleExists(tx, *req.LessonModuleID); err != nil {
				return err
			}
		}

		created = model.LessonModel{
			LessonTitle:    req.LessonTitle,
			LessonContent:  req.LessonContent,
			LessonOrder:    req.LessonOrder,
			LessonModuleID: req.LessonModuleID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create lesson")
		}

		for _, fh := range files {
			att, err := s.Store.Attach(ctx, tx, created.LessonID, fh)
			if err != nil {
				return err
			}
			writtenKeys = append(writtenKeys, att.AttachmentURL)
		}
		for _, link := range req.ExternalLinks {
			if _, err := s.Store.AttachLink(tx, created.LessonID, link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.Store.CleanupBlobs(ctx, writtenKeys)
		return dto.LessonDTO{}, err
	}

	return s.GetLessonByID(ctx, created.LessonID)
}

// UpdateLesson applies, in order: attachment deletions, scalar field
// updates, new file uploads, new external links. Deleting before adding lets
// a client replace a file by naming it in both lists within one call.
func (s *LessonService) UpdateLesson(ctx context.Context, lessonID uuid.UUID, req dto.UpdateLessonRequest, files []*multipart.FileHeader) (dto.LessonDTO, error) {
	if err := ValidateUploads(files); err != nil {
		return dto.LessonDTO{}, err
	}

	var (
		blobsToDelete []string
		writtenKeys   []string
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson model.LessonModel
		if err := tx.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
		}

		// 1) deletions first
		keys, err := s.Store.DetachMany(tx, lessonID, req.DeleteAttachments)
		if err != nil {
			return err
		}
		blobsToDelete = keys

		// 2) scalar updates
		updates := map[string]interface{}{}
		if req.LessonTitle != nil {
			updates["lesson_title"] = *req.LessonTitle
		}
		if req.LessonContent != nil {
			updates["lesson_content"] = *req.LessonContent
		}
		if req.LessonOrder != nil {
			updates["lesson_order"] = *req.LessonOrder
		}
		if req.LessonModuleID != nil {
			if err := ensureModuleExists(tx, *req.LessonModuleID); err != nil {
				return err
			}
			updates["lesson_module_id"] = *req.LessonModuleID
		}
		if len(updates) > 0 {
			if err := tx.Model(&lesson).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update lesson")
			}
		}

		// 3) new uploads
		for _, fh := range files {
			att, err := s.Store.Attach(ctx, tx, lessonID, fh)
			if err != nil {
				return err
			}
			writtenKeys = append(writtenKeys, att.AttachmentURL)
		}

		// 4) new external links
		for _, link := range req.ExternalLinks {
			if _, err := s.Store.AttachLink(tx, lessonID, link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.Store.CleanupBlobs(ctx, writtenKeys)
		return dto.LessonDTO{}, err
	}

	// records are gone; now drop the blobs
	s.Store.CleanupBlobs(ctx, blobsToDelete)

	return s.GetLessonByID(ctx, lessonID)
}

// DeleteLesson removes the lesson and every attachment in one transaction.
func (s *LessonService) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	var blobsToDelete []string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson model.LessonModel
		if err := tx.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
		}

		keys, err := s.Store.DeleteAllFor(tx, lessonID)
		if err != nil {
			return err
		}
		blobsToDelete = keys

		if err := tx.Delete(&model.LessonModel{}, "lesson_id = ?", lessonID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete lesson")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Store.CleanupBlobs(ctx, blobsToDelete)
	return nil
}

// GetLessonByID loads one lesson with attachments and its owning module.
func (s *LessonService) GetLessonByID(ctx context.Context, lessonID uuid.UUID) (dto.LessonDTO, error) {
	db := s.DB.WithContext(ctx)

	var lesson model.LessonModel
	if err := db.Preload("Attachments").First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonDTO{}, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return dto.LessonDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lesson")
	}

	module, err := s.moduleLite(db, lesson.LessonModuleID)
	if err != nil {
		return dto.LessonDTO{}, err
	}
	return dto.ToLessonDTO(lesson, module), nil
}

// GetAllLessons lists lessons newest-first with attachments and owning
// modules, paginated.
func (s *LessonService) GetAllLessons(ctx context.Context, p helper.PaginationParams) ([]dto.LessonDTO, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&model.LessonModel{}).Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count lessons")
	}

	var lessons []model.LessonModel
	if err := db.Preload("Attachments").
		Order("lesson_created_at DESC").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&lessons).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list lessons")
	}

	modules, err := s.moduleLiteMap(db, collectModuleIDs(lessons))
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.LessonDTO, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, dto.ToLessonDTO(l, lookupModule(modules, l.LessonModuleID)))
	}
	return out, total, nil
}

// GetInstructorLessons returns the de-duplicated lessons of every module the
// instructor actively teaches, optionally filtered by course session. Each
// lesson carries its owning module (without that module's lesson list) and
// an attachment count.
func (s *LessonService) GetInstructorLessons(ctx context.Context, instructorID uuid.UUID, courseSessionID *uuid.UUID) ([]dto.LessonDTO, error) {
	db := s.DB.WithContext(ctx)

	q := db.Model(&sessionModel.ModuleSessionInstructorModel{}).
		Where("module_session_instructor_instructor_id = ?", instructorID).
		Where("module_session_instructor_ended_at IS NULL")
	if courseSessionID != nil {
		q = q.Where("module_session_instructor_course_session_id = ?", *courseSessionID)
	}

	var assignments []sessionModel.ModuleSessionInstructorModel
	if err := q.Find(&assignments).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load module assignments")
	}
	if len(assignments) == 0 {
		return []dto.LessonDTO{}, nil
	}

	moduleIDs := make([]uuid.UUID, 0, len(assignments))
	seenModule := make(map[uuid.UUID]struct{}, len(assignments))
	for _, a := range assignments {
		if _, ok := seenModule[a.ModuleSessionInstructorModuleID]; ok {
			continue
		}
		seenModule[a.ModuleSessionInstructorModuleID] = struct{}{}
		moduleIDs = append(moduleIDs, a.ModuleSessionInstructorModuleID)
	}

	modules, err := s.moduleLiteMap(db, moduleIDs)
	if err != nil {
		return nil, err
	}

	var lessons []model.LessonModel
	if err := db.Preload("Attachments").
		Where("lesson_module_id IN ?", moduleIDs).
		Order("lesson_order ASC").
		Find(&lessons).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load lessons")
	}

	out := make([]dto.LessonDTO, 0, len(lessons))
	seenLesson := make(map[uuid.UUID]struct{}, len(lessons))
	for _, l := range lessons {
		if _, ok := seenLesson[l.LessonID]; ok {
			continue
		}
		seenLesson[l.LessonID] = struct{}{}
		out = append(out, dto.ToLessonDTO(l, lookupModule(modules, l.LessonModuleID)))
	}
	return out, nil
}

/* =======================================================================
   internals
======================================================================= */

func ensureModuleExists(tx *gorm.DB, moduleID uuid.UUID) error {
	var count int64
	if err := tx.Model(&moduleModel.ModuleModel{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check module")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Module not found")
	}
	return nil
}

func (s *LessonService) moduleLite(db *gorm.DB, moduleID *uuid.UUID) (*dto.ModuleLiteDTO, error) {
	if moduleID == nil {
		return nil, nil
	}
	m, err := s.moduleLiteMap(db, []uuid.UUID{*moduleID})
	if err != nil {
		return nil, err
	}
	return lookupModule(m, moduleID), nil
}

func (s *LessonService) moduleLiteMap(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]dto.ModuleLiteDTO, error) {
	out := make(map[uuid.UUID]dto.ModuleLiteDTO, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var modules []moduleModel.ModuleModel
	if err := db.Where("module_id IN ?", ids).Find(&modules).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load modules")
	}
	for _, m := range modules {
		out[m.ModuleID] = dto.ModuleLiteDTO{
			ModuleID:          m.ModuleID,
			ModuleTitle:       m.ModuleTitle,
			ModuleDescription: m.ModuleDescription,
			ModuleOrder:       m.ModuleOrder,
			ModuleFormationID: m.ModuleFormationID,
		}
	}
	return out, nil
}

func collectModuleIDs(lessons []model.LessonModel) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	out := make([]uuid.UUID, 0, len(lessons))
	for _, l := range lessons {
		if l.LessonModuleID == nil {
			continue
		}
		if _, ok := seen[*l.LessonModuleID]; ok {
			continue
		}
		seen[*l.LessonModuleID] = struct{}{}
		out = append(out, *l.LessonModuleID)
	}
	return out
}

func lookupModule(m map[uuid.UUID]dto.ModuleLiteDTO, id *uuid.UUID) *dto.ModuleLiteDTO {
	if id == nil {
		return nil
	}
	if lite, ok := m[*id]; ok {
		return &lite
	}
	return nil
}
