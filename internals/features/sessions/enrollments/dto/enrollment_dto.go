package dto

import (
	"time"

	"github.com/google/uuid"

	sessionDTO "afrikstudent_backend/internals/features/sessions/course_sessions/dto"
	"afrikstudent_backend/internals/features/sessions/enrollments/model"
)

// ===========================
// Responses
// ===========================

type EnrollmentDTO struct {
	EnrollmentID              uuid.UUID `json:"enrollment_id"`
	EnrollmentStudentID       uuid.UUID `json:"enrollment_student_id"`
	EnrollmentCourseSessionID uuid.UUID `json:"enrollment_course_session_id"`

	EnrollmentDate time.Time `json:"enrollment_date"`

	EnrollmentStatus        string   `json:"enrollment_status"`
	EnrollmentPaymentStatus string   `json:"enrollment_payment_status"`
	EnrollmentPaymentAmount *float64 `json:"enrollment_payment_amount"`

	EnrollmentCreatedAt time.Time `json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `json:"enrollment_updated_at"`

	Student *sessionDTO.UserLiteDTO `json:"student,omitempty"`
}

// ===========================
// Requests
// ===========================

type CreateEnrollmentRequest struct {
	EnrollmentStudentID       uuid.UUID `json:"enrollment_student_id" validate:"required"`
	EnrollmentCourseSessionID uuid.UUID `json:"enrollment_course_session_id" validate:"required"`

	EnrollmentPaymentAmount *float64 `json:"enrollment_payment_amount" validate:"omitempty,min=0"`
}

type UpdateEnrollmentRequest struct {
	EnrollmentStatus        *string  `json:"enrollment_status" validate:"omitempty,oneof=pending confirmed cancelled"`
	EnrollmentPaymentStatus *string  `json:"enrollment_payment_status" validate:"omitempty,oneof=unpaid paid"`
	EnrollmentPaymentAmount *float64 `json:"enrollment_payment_amount" validate:"omitempty,min=0"`
}

type BulkUnenrollRequest struct {
	CourseSessionID uuid.UUID   `json:"course_session_id" validate:"required"`
	StudentIDs      []uuid.UUID `json:"student_ids" validate:"required,min=1"`
}

// ===========================
// Converters
// ===========================

func ToEnrollmentDTO(m model.EnrollmentModel) EnrollmentDTO {
	out := EnrollmentDTO{
		EnrollmentID:              m.EnrollmentID,
		EnrollmentStudentID:       m.EnrollmentStudentID,
		EnrollmentCourseSessionID: m.EnrollmentCourseSessionID,
		EnrollmentDate:            m.EnrollmentDate,
		EnrollmentStatus:          m.EnrollmentStatus,
		EnrollmentPaymentStatus:   m.EnrollmentPaymentStatus,
		EnrollmentPaymentAmount:   m.EnrollmentPaymentAmount,
		EnrollmentCreatedAt:       m.EnrollmentCreatedAt,
		EnrollmentUpdatedAt:       m.EnrollmentUpdatedAt,
	}
	if m.Student != nil {
		out.Student = &sessionDTO.UserLiteDTO{
			UserID:    m.Student.UserID,
			UserName:  m.Student.UserName,
			UserEmail: m.Student.UserEmail,
			UserRole:  m.Student.UserRole,
		}
	}
	return out
}
