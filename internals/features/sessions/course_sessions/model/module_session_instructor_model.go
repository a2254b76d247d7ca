package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	moduleModel "afrikstudent_backend/internals/features/academics/modules/model"
)

// ModuleSessionInstructorModel records which instructor teaches which module
// within a course session. A row with a NULL ended_at is an active assignment.
type ModuleSessionInstructorModel struct {
	ModuleSessionInstructorID             uuid.UUID `gorm:"column:module_session_instructor_id;type:uuid;primaryKey" json:"module_session_instructor_id"`
	ModuleSessionInstructorModuleID       uuid.UUID `gorm:"column:module_session_instructor_module_id;type:uuid;not null;index" json:"module_session_instructor_module_id"`
	ModuleSessionInstructorCourseSessionID uuid.UUID `gorm:"column:module_session_instructor_course_session_id;type:uuid;not null;index" json:"module_session_instructor_course_session_id"`
	ModuleSessionInstructorInstructorID   uuid.UUID `gorm:"column:module_session_instructor_instructor_id;type:uuid;not null;index" json:"module_session_instructor_instructor_id"`

	ModuleSessionInstructorStartedAt time.Time  `gorm:"column:module_session_instructor_started_at;autoCreateTime" json:"module_session_instructor_started_at"`
	ModuleSessionInstructorEndedAt   *time.Time `gorm:"column:module_session_instructor_ended_at" json:"module_session_instructor_ended_at"`

	Module *moduleModel.ModuleModel `gorm:"foreignKey:ModuleSessionInstructorModuleID;references:ModuleID" json:"module,omitempty"`
}

func (ModuleSessionInstructorModel) TableName() string { return "module_session_instructors" }

func (m *ModuleSessionInstructorModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModuleSessionInstructorID == uuid.Nil {
		m.ModuleSessionInstructorID = uuid.New()
	}
	return nil
}
