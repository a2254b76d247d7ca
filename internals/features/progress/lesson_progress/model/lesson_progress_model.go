package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	lessonModel "afrikstudent_backend/internals/features/academics/lessons/model"
)

type LessonProgressModel struct {
	LessonProgressID        uuid.UUID `gorm:"column:lesson_progress_id;type:uuid;primaryKey" json:"lesson_progress_id"`
	LessonProgressStudentID uuid.UUID `gorm:"column:lesson_progress_student_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_student_lesson" json:"lesson_progress_student_id"`
	LessonProgressLessonID  uuid.UUID `gorm:"column:lesson_progress_lesson_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_student_lesson" json:"lesson_progress_lesson_id"`

	LessonProgressIsCompleted bool       `gorm:"column:lesson_progress_is_completed;not null;default:false" json:"lesson_progress_is_completed"`
	LessonProgressCompletedAt *time.Time `gorm:"column:lesson_progress_completed_at" json:"lesson_progress_completed_at"`

	LessonProgressCreatedAt time.Time `gorm:"column:lesson_progress_created_at;autoCreateTime" json:"lesson_progress_created_at"`
	LessonProgressUpdatedAt time.Time `gorm:"column:lesson_progress_updated_at;autoUpdateTime" json:"lesson_progress_updated_at"`

	Lesson *lessonModel.LessonModel `gorm:"foreignKey:LessonProgressLessonID;references:LessonID;constraint:OnDelete:CASCADE" json:"lesson,omitempty"`
}

func (LessonProgressModel) TableName() string { return "lesson_progress" }

func (p *LessonProgressModel) BeforeCreate(tx *gorm.DB) error {
	if p.LessonProgressID == uuid.Nil {
		p.LessonProgressID = uuid.New()
	}
	return nil
}
