package dto

import (
	"time"

	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/sessions/course_sessions/model"
)

// ===========================
// Responses
// ===========================

type UserLiteDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	UserRole  string    `json:"user_role"`
}

type CourseSessionDTO struct {
	CourseSessionID           uuid.UUID `json:"course_session_id"`
	CourseSessionFormationID  uuid.UUID `json:"course_session_formation_id"`
	CourseSessionInstructorID uuid.UUID `json:"course_session_instructor_id"`

	CourseSessionStartDate time.Time `json:"course_session_start_date"`
	CourseSessionEndDate   time.Time `json:"course_session_end_date"`

	CourseSessionStatus      string  `json:"course_session_status"`
	CourseSessionMaxStudents int     `json:"course_session_max_students"`
	CourseSessionLocation    *string `json:"course_session_location"`

	CourseSessionCreatedAt time.Time `json:"course_session_created_at"`
	CourseSessionUpdatedAt time.Time `json:"course_session_updated_at"`

	FormationTitle *string      `json:"formation_title,omitempty"`
	Instructor     *UserLiteDTO `json:"instructor,omitempty"`

	EnrolledCount int64 `json:"enrolled_count"`
	IsFull        bool  `json:"is_full"`
}

type ModuleSessionInstructorDTO struct {
	ModuleSessionInstructorID              uuid.UUID  `json:"module_session_instructor_id"`
	ModuleSessionInstructorModuleID        uuid.UUID  `json:"module_session_instructor_module_id"`
	ModuleSessionInstructorCourseSessionID uuid.UUID  `json:"module_session_instructor_course_session_id"`
	ModuleSessionInstructorInstructorID    uuid.UUID  `json:"module_session_instructor_instructor_id"`
	ModuleSessionInstructorStartedAt       time.Time  `json:"module_session_instructor_started_at"`
	ModuleSessionInstructorEndedAt         *time.Time `json:"module_session_instructor_ended_at"`
}

// ===========================
// Requests
// ===========================

type CreateCourseSessionRequest struct {
	CourseSessionFormationID  uuid.UUID `json:"course_session_formation_id" validate:"required"`
	CourseSessionInstructorID uuid.UUID `json:"course_session_instructor_id" validate:"required"`

	CourseSessionStartDate time.Time `json:"course_session_start_date" validate:"required"`
	CourseSessionEndDate   time.Time `json:"course_session_end_date" validate:"required"`

	CourseSessionStatus      string  `json:"course_session_status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	CourseSessionMaxStudents *int    `json:"course_session_max_students" validate:"omitempty,min=1"`
	CourseSessionLocation    *string `json:"course_session_location" validate:"omitempty,max=255"`
}

type UpdateCourseSessionRequest struct {
	CourseSessionFormationID  *uuid.UUID `json:"course_session_formation_id"`
	CourseSessionInstructorID *uuid.UUID `json:"course_session_instructor_id"`

	CourseSessionStartDate *time.Time `json:"course_session_start_date"`
	CourseSessionEndDate   *time.Time `json:"course_session_end_date"`

	CourseSessionStatus      *string `json:"course_session_status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	CourseSessionMaxStudents *int    `json:"course_session_max_students" validate:"omitempty,min=1"`
	CourseSessionLocation    *string `json:"course_session_location" validate:"omitempty,max=255"`
}

type AssignModuleInstructorRequest struct {
	ModuleID     uuid.UUID `json:"module_id" validate:"required"`
	InstructorID uuid.UUID `json:"instructor_id" validate:"required"`
}

// ===========================
// Converters
// ===========================

func ToCourseSessionDTO(m model.CourseSessionModel, enrolled int64) CourseSessionDTO {
	out := CourseSessionDTO{
		CourseSessionID:           m.CourseSessionID,
		CourseSessionFormationID:  m.CourseSessionFormationID,
		CourseSessionInstructorID: m.CourseSessionInstructorID,
		CourseSessionStartDate:    m.CourseSessionStartDate,
		CourseSessionEndDate:      m.CourseSessionEndDate,
		CourseSessionStatus:       m.CourseSessionStatus,
		CourseSessionMaxStudents:  m.CourseSessionMaxStudents,
		CourseSessionLocation:     m.CourseSessionLocation,
		CourseSessionCreatedAt:    m.CourseSessionCreatedAt,
		CourseSessionUpdatedAt:    m.CourseSessionUpdatedAt,
		EnrolledCount:             enrolled,
		IsFull:                    enrolled >= int64(m.CourseSessionMaxStudents),
	}
	if m.Formation != nil {
		out.FormationTitle = &m.Formation.FormationTitle
	}
	if m.Instructor != nil {
		out.Instructor = &UserLiteDTO{
			UserID:    m.Instructor.UserID,
			UserName:  m.Instructor.UserName,
			UserEmail: m.Instructor.UserEmail,
			UserRole:  m.Instructor.UserRole,
		}
	}
	return out
}

func ToModuleSessionInstructorDTO(m model.ModuleSessionInstructorModel) ModuleSessionInstructorDTO {
	return ModuleSessionInstructorDTO{
		ModuleSessionInstructorID:              m.ModuleSessionInstructorID,
		ModuleSessionInstructorModuleID:        m.ModuleSessionInstructorModuleID,
		ModuleSessionInstructorCourseSessionID: m.ModuleSessionInstructorCourseSessionID,
		ModuleSessionInstructorInstructorID:    m.ModuleSessionInstructorInstructorID,
		ModuleSessionInstructorStartedAt:       m.ModuleSessionInstructorStartedAt,
		ModuleSessionInstructorEndedAt:         m.ModuleSessionInstructorEndedAt,
	}
}
