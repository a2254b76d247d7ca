package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formationModel "afrikstudent_backend/internals/features/academics/formations/model"
	moduleModel "afrikstudent_backend/internals/features/academics/modules/model"
	"afrikstudent_backend/internals/constants"
	"afrikstudent_backend/internals/features/sessions/course_sessions/dto"
	"afrikstudent_backend/internals/features/sessions/course_sessions/model"
	enrollmentModel "afrikstudent_backend/internals/features/sessions/enrollments/model"
	userModel "afrikstudent_backend/internals/features/users/users/model"
	helper "afrikstudent_backend/internals/helpers"
)

// CourseSessionService manages scheduled runs of a formation. Capacity is
// counted against non-cancelled enrollments only, so a cancelled seat frees
// up immediately.
type CourseSessionService struct {
	DB *gorm.DB
}

func NewCourseSessionService(db *gorm.DB) *CourseSessionService {
	return &CourseSessionService{DB: db}
}

func (s *CourseSessionService) CreateSession(ctx context.Context, req dto.CreateCourseSessionRequest) (dto.CourseSessionDTO, error) {
	var created model.CourseSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureFormationExists(tx, req.CourseSessionFormationID); err != nil {
			return err
		}
		if err := ensureInstructor(tx, req.CourseSessionInstructorID); err != nil {
			return err
		}
		if !req.CourseSessionEndDate.After(req.CourseSessionStartDate) {
			return fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
		}

		created = model.CourseSessionModel{
			CourseSessionFormationID:  req.CourseSessionFormationID,
			CourseSessionInstructorID: req.CourseSessionInstructorID,
			CourseSessionStartDate:    req.CourseSessionStartDate,
			CourseSessionEndDate:      req.CourseSessionEndDate,
			CourseSessionStatus:       req.CourseSessionStatus,
			CourseSessionLocation:     req.CourseSessionLocation,
		}
		if created.CourseSessionStatus == "" {
			created.CourseSessionStatus = model.SessionStatusScheduled
		}
		if req.CourseSessionMaxStudents != nil {
			created.CourseSessionMaxStudents = *req.CourseSessionMaxStudents
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create course session")
		}
		return nil
	})
	if err != nil {
		return dto.CourseSessionDTO{}, err
	}
	return s.GetSessionByID(ctx, created.CourseSessionID)
}

func (s *CourseSessionService) UpdateSession(ctx context.Context, sessionID uuid.UUID, req dto.UpdateCourseSessionRequest) (dto.CourseSessionDTO, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := loadSession(tx, sessionID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.CourseSessionFormationID != nil {
			if err := ensureFormationExists(tx, *req.CourseSessionFormationID); err != nil {
				return err
			}
			updates["course_session_formation_id"] = *req.CourseSessionFormationID
		}
		if req.CourseSessionInstructorID != nil {
			if err := ensureInstructor(tx, *req.CourseSessionInstructorID); err != nil {
				return err
			}
			updates["course_session_instructor_id"] = *req.CourseSessionInstructorID
		}
		if req.CourseSessionStartDate != nil {
			updates["course_session_start_date"] = *req.CourseSessionStartDate
		}
		if req.CourseSessionEndDate != nil {
			updates["course_session_end_date"] = *req.CourseSessionEndDate
		}
		if req.CourseSessionStatus != nil {
			updates["course_session_status"] = *req.CourseSessionStatus
		}
		if req.CourseSessionMaxStudents != nil {
			updates["course_session_max_students"] = *req.CourseSessionMaxStudents
		}
		if req.CourseSessionLocation != nil {
			updates["course_session_location"] = *req.CourseSessionLocation
		}
		if len(updates) > 0 {
			if err := tx.Model(session).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update course session")
			}
		}
		return nil
	})
	if err != nil {
		return dto.CourseSessionDTO{}, err
	}
	return s.GetSessionByID(ctx, sessionID)
}

func (s *CourseSessionService) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadSession(tx, sessionID); err != nil {
			return err
		}
		if err := tx.Delete(&enrollmentModel.EnrollmentModel{}, "enrollment_course_session_id = ?", sessionID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete enrollments")
		}
		if err := tx.Delete(&model.ModuleSessionInstructorModel{}, "module_session_instructor_course_session_id = ?", sessionID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete module assignments")
		}
		if err := tx.Delete(&model.CourseSessionModel{}, "course_session_id = ?", sessionID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete course session")
		}
		return nil
	})
}

func (s *CourseSessionService) GetSessionByID(ctx context.Context, sessionID uuid.UUID) (dto.CourseSessionDTO, error) {
	db := s.DB.WithContext(ctx)

	var session model.CourseSessionModel
	err := db.Preload("Formation").Preload("Instructor").
		First(&session, "course_session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseSessionDTO{}, fiber.NewError(fiber.StatusNotFound, "Course session not found")
		}
		return dto.CourseSessionDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load course session")
	}

	enrolled, err := s.enrolledCount(db, sessionID)
	if err != nil {
		return dto.CourseSessionDTO{}, err
	}
	return dto.ToCourseSessionDTO(session, enrolled), nil
}

type SessionFilter struct {
	FormationID  *uuid.UUID
	InstructorID *uuid.UUID
	Status       *string
}

func (s *CourseSessionService) GetAllSessions(ctx context.Context, filter SessionFilter, p helper.PaginationParams) ([]dto.CourseSessionDTO, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.CourseSessionModel{})
	if filter.FormationID != nil {
		db = db.Where("course_session_formation_id = ?", *filter.FormationID)
	}
	if filter.InstructorID != nil {
		db = db.Where("course_session_instructor_id = ?", *filter.InstructorID)
	}
	if filter.Status != nil {
		db = db.Where("course_session_status = ?", *filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count course sessions")
	}

	var sessions []model.CourseSessionModel
	if err := db.Preload("Formation").Preload("Instructor").
		Order("course_session_start_date ASC").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&sessions).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list course sessions")
	}

	out, err := s.withEnrolledCounts(ctx, sessions)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetAvailableSessions returns sessions a student can still join: not
// cancelled and not full.
func (s *CourseSessionService) GetAvailableSessions(ctx context.Context) ([]dto.CourseSessionDTO, error) {
	var sessions []model.CourseSessionModel
	if err := s.DB.WithContext(ctx).
		Preload("Formation").Preload("Instructor").
		Where("course_session_status <> ?", model.SessionStatusCancelled).
		Order("course_session_start_date ASC").
		Find(&sessions).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list course sessions")
	}

	all, err := s.withEnrolledCounts(ctx, sessions)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseSessionDTO, 0, len(all))
	for _, d := range all {
		if !d.IsFull {
			out = append(out, d)
		}
	}
	return out, nil
}

// IsFull reports whether the session has reached max_students, counting
// non-cancelled enrollments.
func (s *CourseSessionService) IsFull(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	db := s.DB.WithContext(ctx)
	session, err := loadSession(db, sessionID)
	if err != nil {
		return false, err
	}
	enrolled, err := s.enrolledCount(db, sessionID)
	if err != nil {
		return false, err
	}
	return enrolled >= int64(session.CourseSessionMaxStudents), nil
}

// GetSessionStudents lists the students holding a non-cancelled enrollment
// in the session.
func (s *CourseSessionService) GetSessionStudents(ctx context.Context, sessionID uuid.UUID) ([]dto.UserLiteDTO, error) {
	db := s.DB.WithContext(ctx)
	if _, err := loadSession(db, sessionID); err != nil {
		return nil, err
	}

	var students []userModel.UserModel
	err := db.Model(&userModel.UserModel{}).
		Joins("JOIN enrollments ON enrollments.enrollment_student_id = users.user_id").
		Where("enrollments.enrollment_course_session_id = ?", sessionID).
		Where("enrollments.enrollment_status <> ?", enrollmentModel.EnrollmentStatusCancelled).
		Find(&students).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list session students")
	}
	return toUserLites(students), nil
}

// GetAvailableStudents lists students not yet enrolled (or only
// cancelled-enrolled) in the session.
func (s *CourseSessionService) GetAvailableStudents(ctx context.Context, sessionID uuid.UUID) ([]dto.UserLiteDTO, error) {
	db := s.DB.WithContext(ctx)
	if _, err := loadSession(db, sessionID); err != nil {
		return nil, err
	}

	var students []userModel.UserModel
	err := db.Model(&userModel.UserModel{}).
		Where("user_role = ?", constants.RoleStudent).
		Where("user_id NOT IN (?)",
			db.Model(&enrollmentModel.EnrollmentModel{}).
				Select("enrollment_student_id").
				Where("enrollment_course_session_id = ?", sessionID).
				Where("enrollment_status <> ?", enrollmentModel.EnrollmentStatusCancelled)).
		Order("user_name ASC").
		Find(&students).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list available students")
	}
	return toUserLites(students), nil
}

// AssignModuleInstructor opens an active teaching assignment for a module
// within the session. An existing active assignment for the same module is
// closed first.
func (s *CourseSessionService) AssignModuleInstructor(ctx context.Context, sessionID uuid.UUID, req dto.AssignModuleInstructorRequest) (dto.ModuleSessionInstructorDTO, error) {
	var created model.ModuleSessionInstructorModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadSession(tx, sessionID); err != nil {
			return err
		}
		if err := ensureModuleExists(tx, req.ModuleID); err != nil {
			return err
		}
		if err := ensureInstructor(tx, req.InstructorID); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.ModuleSessionInstructorModel{}).
			Where("module_session_instructor_course_session_id = ?", sessionID).
			Where("module_session_instructor_module_id = ?", req.ModuleID).
			Where("module_session_instructor_ended_at IS NULL").
			Update("module_session_instructor_ended_at", now).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to close previous assignment")
		}

		created = model.ModuleSessionInstructorModel{
			ModuleSessionInstructorModuleID:        req.ModuleID,
			ModuleSessionInstructorCourseSessionID: sessionID,
			ModuleSessionInstructorInstructorID:    req.InstructorID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign instructor")
		}
		return nil
	})
	if err != nil {
		return dto.ModuleSessionInstructorDTO{}, err
	}
	return dto.ToModuleSessionInstructorDTO(created), nil
}

// EndModuleInstructorAssignment closes an active assignment.
func (s *CourseSessionService) EndModuleInstructorAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Model(&model.ModuleSessionInstructorModel{}).
		Where("module_session_instructor_id = ?", assignmentID).
		Where("module_session_instructor_ended_at IS NULL").
		Update("module_session_instructor_ended_at", time.Now())
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to end assignment")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Active assignment not found")
	}
	return nil
}

/* =======================================================================
   internals
======================================================================= */

func loadSession(tx *gorm.DB, sessionID uuid.UUID) (*model.CourseSessionModel, error) {
	var session model.CourseSessionModel
	if err := tx.First(&session, "course_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course session not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load course session")
	}
	return &session, nil
}

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

func ensureInstructor(tx *gorm.DB, userID uuid.UUID) error {
	var user userModel.UserModel
	if err := tx.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Instructor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check instructor")
	}
	if user.UserRole != constants.RoleInstructor && user.UserRole != constants.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "User is not an instructor")
	}
	return nil
}

func (s *CourseSessionService) enrolledCount(db *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var count int64
	if err := db.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_course_session_id = ?", sessionID).
		Where("enrollment_status <> ?", enrollmentModel.EnrollmentStatusCancelled).
		Count(&count).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count enrollments")
	}
	return count, nil
}

func (s *CourseSessionService) withEnrolledCounts(ctx context.Context, sessions []model.CourseSessionModel) ([]dto.CourseSessionDTO, error) {
	db := s.DB.WithContext(ctx)
	out := make([]dto.CourseSessionDTO, 0, len(sessions))
	for _, session := range sessions {
		enrolled, err := s.enrolledCount(db, session.CourseSessionID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ToCourseSessionDTO(session, enrolled))
	}
	return out, nil
}

func toUserLites(users []userModel.UserModel) []dto.UserLiteDTO {
	out := make([]dto.UserLiteDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserLiteDTO{
			UserID:    u.UserID,
			UserName:  u.UserName,
			UserEmail: u.UserEmail,
			UserRole:  u.UserRole,
		})
	}
	return out
}
