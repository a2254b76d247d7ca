package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	formationModel "afrikstudent_backend/internals/features/academics/formations/model"
	userModel "afrikstudent_backend/internals/features/users/users/model"
)

// Session status values
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusOngoing   = "ongoing"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
)

const DefaultMaxStudents = 30

type CourseSessionModel struct {
	CourseSessionID          uuid.UUID `gorm:"column:course_session_id;type:uuid;primaryKey" json:"course_session_id"`
	CourseSessionFormationID uuid.UUID `gorm:"column:course_session_formation_id;type:uuid;not null;index" json:"course_session_formation_id"`
	CourseSessionInstructorID uuid.UUID `gorm:"column:course_session_instructor_id;type:uuid;not null;index" json:"course_session_instructor_id"`

	CourseSessionStartDate time.Time `gorm:"column:course_session_start_date;not null" json:"course_session_start_date"`
	CourseSessionEndDate   time.Time `gorm:"column:course_session_end_date;not null" json:"course_session_end_date"`

	CourseSessionStatus      string  `gorm:"column:course_session_status;type:varchar(20);not null;default:scheduled" json:"course_session_status"`
	CourseSessionMaxStudents int     `gorm:"column:course_session_max_students;not null;default:30" json:"course_session_max_students"`
	CourseSessionLocation    *string `gorm:"column:course_session_location;type:varchar(255)" json:"course_session_location"`

	CourseSessionCreatedAt time.Time `gorm:"column:course_session_created_at;autoCreateTime" json:"course_session_created_at"`
	CourseSessionUpdatedAt time.Time `gorm:"column:course_session_updated_at;autoUpdateTime" json:"course_session_updated_at"`

	Formation  *formationModel.FormationModel `gorm:"foreignKey:CourseSessionFormationID;references:FormationID;constraint:OnDelete:CASCADE" json:"formation,omitempty"`
	Instructor *userModel.UserModel           `gorm:"foreignKey:CourseSessionInstructorID;references:UserID" json:"instructor,omitempty"`
}

func (CourseSessionModel) TableName() string { return "course_sessions" }

func (s *CourseSessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.CourseSessionID == uuid.Nil {
		s.CourseSessionID = uuid.New()
	}
	if s.CourseSessionMaxStudents == 0 {
		s.CourseSessionMaxStudents = DefaultMaxStudents
	}
	return nil
}
