package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "afrikstudent_backend/internals/features/sessions/course_sessions/model"
	userModel "afrikstudent_backend/internals/features/users/users/model"
)

// Enrollment status values
const (
	EnrollmentStatusPending   = "pending"
	EnrollmentStatusConfirmed = "confirmed"
	EnrollmentStatusCancelled = "cancelled"
)

// Payment status values
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type EnrollmentModel struct {
	EnrollmentID              uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentStudentID       uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;uniqueIndex:uq_enrollments_student_session" json:"enrollment_student_id"`
	EnrollmentCourseSessionID uuid.UUID `gorm:"column:enrollment_course_session_id;type:uuid;not null;uniqueIndex:uq_enrollments_student_session" json:"enrollment_course_session_id"`

	EnrollmentDate time.Time `gorm:"column:enrollment_date;not null" json:"enrollment_date"`

	EnrollmentStatus        string   `gorm:"column:enrollment_status;type:varchar(20);not null;default:pending" json:"enrollment_status"`
	EnrollmentPaymentStatus string   `gorm:"column:enrollment_payment_status;type:varchar(20);not null;default:unpaid" json:"enrollment_payment_status"`
	EnrollmentPaymentAmount *float64 `gorm:"column:enrollment_payment_amount;type:numeric(10,2)" json:"enrollment_payment_amount"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`

	Student       *userModel.UserModel              `gorm:"foreignKey:EnrollmentStudentID;references:UserID" json:"student,omitempty"`
	CourseSession *sessionModel.CourseSessionModel  `gorm:"foreignKey:EnrollmentCourseSessionID;references:CourseSessionID;constraint:OnDelete:CASCADE" json:"course_session,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (e *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if e.EnrollmentID == uuid.Nil {
		e.EnrollmentID = uuid.New()
	}
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now()
	}
	return nil
}
