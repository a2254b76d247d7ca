package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "afrikstudent_backend/internals/features/sessions/course_sessions/model"
	"afrikstudent_backend/internals/features/sessions/enrollments/dto"
	"afrikstudent_backend/internals/features/sessions/enrollments/model"
	userModel "afrikstudent_backend/internals/features/users/users/model"
	helper "afrikstudent_backend/internals/helpers"
)

// EnrollmentService registers students into course sessions. A student holds
// at most one enrollment row per session; re-enrolling after a cancellation
// reactivates that row instead of inserting a duplicate.
type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// CreateEnrollment enrolls a student if the session is open and has a free
// seat. Duplicate active enrollments are rejected with 409.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest) (dto.EnrollmentDTO, error) {
	var enrollmentID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student userModel.UserModel
		if err := tx.First(&student, "user_id = ?", req.EnrollmentStudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check student")
		}

		var session sessionModel.CourseSessionModel
		if err := tx.First(&session, "course_session_id = ?", req.EnrollmentCourseSessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Course session not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check course session")
		}
		if session.CourseSessionStatus == sessionModel.SessionStatusCancelled {
			return fiber.NewError(fiber.StatusConflict, "Course session is cancelled")
		}

		var enrolled int64
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_course_session_id = ?", session.CourseSessionID).
			Where("enrollment_status <> ?", model.EnrollmentStatusCancelled).
			Count(&enrolled).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count enrollments")
		}
		if enrolled >= int64(session.CourseSessionMaxStudents) {
			return fiber.NewError(fiber.StatusConflict, "Course session is full")
		}

		var existing model.EnrollmentModel
		err := tx.Where("enrollment_student_id = ?", req.EnrollmentStudentID).
			Where("enrollment_course_session_id = ?", req.EnrollmentCourseSessionID).
			First(&existing).Error
		switch {
		case err == nil && existing.EnrollmentStatus != model.EnrollmentStatusCancelled:
			return fiber.NewError(fiber.StatusConflict, "Student is already enrolled in this session")
		case err == nil:
			// cancelled row: reactivate in place
			updates := map[string]interface{}{
				"enrollment_status": model.EnrollmentStatusPending,
				"enrollment_date":   time.Now(),
			}
			if req.EnrollmentPaymentAmount != nil {
				updates["enrollment_payment_amount"] = *req.EnrollmentPaymentAmount
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to re-enroll student")
			}
			enrollmentID = existing.EnrollmentID
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check enrollment")
		}

		created := model.EnrollmentModel{
			EnrollmentStudentID:       req.EnrollmentStudentID,
			EnrollmentCourseSessionID: req.EnrollmentCourseSessionID,
			EnrollmentStatus:          model.EnrollmentStatusPending,
			EnrollmentPaymentStatus:   model.PaymentStatusUnpaid,
			EnrollmentPaymentAmount:   req.EnrollmentPaymentAmount,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create enrollment")
		}
		enrollmentID = created.EnrollmentID
		return nil
	})
	if err != nil {
		return dto.EnrollmentDTO{}, err
	}
	return s.GetEnrollmentByID(ctx, enrollmentID)
}

// ConfirmEnrollment moves a pending enrollment to confirmed.
func (s *EnrollmentService) ConfirmEnrollment(ctx context.Context, enrollmentID uuid.UUID) (dto.EnrollmentDTO, error) {
	return s.setStatus(ctx, enrollmentID, model.EnrollmentStatusConfirmed)
}

// CancelEnrollment cancels the enrollment, freeing the seat.
func (s *EnrollmentService) CancelEnrollment(ctx context.Context, enrollmentID uuid.UUID) (dto.EnrollmentDTO, error) {
	return s.setStatus(ctx, enrollmentID, model.EnrollmentStatusCancelled)
}

func (s *EnrollmentService) UpdateEnrollment(ctx context.Context, enrollmentID uuid.UUID, req dto.UpdateEnrollmentRequest) (dto.EnrollmentDTO, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := loadEnrollment(tx, enrollmentID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.EnrollmentStatus != nil {
			updates["enrollment_status"] = *req.EnrollmentStatus
		}
		if req.EnrollmentPaymentStatus != nil {
			updates["enrollment_payment_status"] = *req.EnrollmentPaymentStatus
		}
		if req.EnrollmentPaymentAmount != nil {
			updates["enrollment_payment_amount"] = *req.EnrollmentPaymentAmount
		}
		if len(updates) > 0 {
			if err := tx.Model(enrollment).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to update enrollment")
			}
		}
		return nil
	})
	if err != nil {
		return dto.EnrollmentDTO{}, err
	}
	return s.GetEnrollmentByID(ctx, enrollmentID)
}

func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, enrollmentID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadEnrollment(tx, enrollmentID); err != nil {
			return err
		}
		if err := tx.Delete(&model.EnrollmentModel{}, "enrollment_id = ?", enrollmentID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete enrollment")
		}
		return nil
	})
}

// BulkUnenroll removes the named students from a session in one call.
func (s *EnrollmentService) BulkUnenroll(ctx context.Context, req dto.BulkUnenrollRequest) (int64, error) {
	var removed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&sessionModel.CourseSessionModel{}).
			Where("course_session_id = ?", req.CourseSessionID).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check course session")
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Course session not found")
		}

		res := tx.Where("enrollment_course_session_id = ?", req.CourseSessionID).
			Where("enrollment_student_id IN ?", req.StudentIDs).
			Delete(&model.EnrollmentModel{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to unenroll students")
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func (s *EnrollmentService) GetEnrollmentByID(ctx context.Context, enrollmentID uuid.UUID) (dto.EnrollmentDTO, error) {
	var enrollment model.EnrollmentModel
	err := s.DB.WithContext(ctx).Preload("Student").
		First(&enrollment, "enrollment_id = ?", enrollmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentDTO{}, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
		}
		return dto.EnrollmentDTO{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to load enrollment")
	}
	return dto.ToEnrollmentDTO(enrollment), nil
}

type EnrollmentFilter struct {
	StudentID       *uuid.UUID
	CourseSessionID *uuid.UUID
	Status          *string
}

func (s *EnrollmentService) GetAllEnrollments(ctx context.Context, filter EnrollmentFilter, p helper.PaginationParams) ([]dto.EnrollmentDTO, int64, error) {
	db := s.DB.WithContext(ctx).Model(&model.EnrollmentModel{})
	if filter.StudentID != nil {
		db = db.Where("enrollment_student_id = ?", *filter.StudentID)
	}
	if filter.CourseSessionID != nil {
		db = db.Where("enrollment_course_session_id = ?", *filter.CourseSessionID)
	}
	if filter.Status != nil {
		db = db.Where("enrollment_status = ?", *filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to count enrollments")
	}

	var enrollments []model.EnrollmentModel
	if err := db.Preload("Student").
		Order("enrollment_created_at DESC").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&enrollments).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to list enrollments")
	}

	out := make([]dto.EnrollmentDTO, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, dto.ToEnrollmentDTO(e))
	}
	return out, total, nil
}

/* =======================================================================
   internals
======================================================================= */

func loadEnrollment(tx *gorm.DB, enrollmentID uuid.UUID) (*model.EnrollmentModel, error) {
	var enrollment model.EnrollmentModel
	if err := tx.First(&enrollment, "enrollment_id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Enrollment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load enrollment")
	}
	return &enrollment, nil
}

func (s *EnrollmentService) setStatus(ctx context.Context, enrollmentID uuid.UUID, status string) (dto.EnrollmentDTO, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := loadEnrollment(tx, enrollmentID)
		if err != nil {
			return err
		}
		if err := tx.Model(enrollment).
			Update("enrollment_status", status).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update enrollment status")
		}
		return nil
	})
	if err != nil {
		return dto.EnrollmentDTO{}, err
	}
	return s.GetEnrollmentByID(ctx, enrollmentID)
}
