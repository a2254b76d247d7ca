package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	formationModel "afrikstudent_backend/internals/features/academics/formations/model"
	lessonModel "afrikstudent_backend/internals/features/academics/lessons/model"
)

type ModuleModel struct {
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;primaryKey" json:"module_id"`
	ModuleTitle       string    `gorm:"column:module_title;type:varchar(255);not null" json:"module_title"`
	ModuleDescription *string   `gorm:"column:module_description;type:text" json:"module_description"`

	// Display order within the formation. Duplicates are allowed.
	ModuleOrder int `gorm:"column:module_order;not null;default:1" json:"module_order"`

	ModuleFormationID uuid.UUID `gorm:"column:module_formation_id;type:uuid;not null;index" json:"module_formation_id"`

	ModuleCreatedAt time.Time `gorm:"column:module_created_at;autoCreateTime" json:"module_created_at"`
	ModuleUpdatedAt time.Time `gorm:"column:module_updated_at;autoUpdateTime" json:"module_updated_at"`

	Formation *formationModel.FormationModel `gorm:"foreignKey:ModuleFormationID;references:FormationID;constraint:OnDelete:CASCADE" json:"formation,omitempty"`
	Lessons   []lessonModel.LessonModel      `gorm:"foreignKey:LessonModuleID;references:ModuleID" json:"lessons,omitempty"`
}

func (ModuleModel) TableName() string { return "modules" }

func (m *ModuleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ModuleID == uuid.Nil {
		m.ModuleID = uuid.New()
	}
	return nil
}
