package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonModel struct {
	LessonID      uuid.UUID  `gorm:"column:lesson_id;type:uuid;primaryKey" json:"lesson_id"`
	LessonTitle   string     `gorm:"column:lesson_title;type:varchar(255);not null" json:"lesson_title"`
	LessonContent *string    `gorm:"column:lesson_content;type:text" json:"lesson_content"`
	LessonOrder   *int       `gorm:"column:lesson_order" json:"lesson_order"`

	// Nullable on purpose: a lesson may be unassigned. Deleting a module
	// detaches its lessons instead of deleting them.
	LessonModuleID *uuid.UUID `gorm:"column:lesson_module_id;type:uuid;index" json:"lesson_module_id"`

	LessonCreatedAt time.Time `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`

	Attachments []AttachmentModel `gorm:"polymorphic:Attachable;polymorphicValue:Lesson" json:"attachments,omitempty"`
}

func (LessonModel) TableName() string { return "lessons" }

func (l *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if l.LessonID == uuid.Nil {
		l.LessonID = uuid.New()
	}
	return nil
}
