package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FormationModel struct {
	FormationID          uuid.UUID `gorm:"column:formation_id;type:uuid;primaryKey" json:"formation_id"`
	FormationTitle       string    `gorm:"column:formation_title;type:varchar(255);not null" json:"formation_title"`
	FormationDescription *string   `gorm:"column:formation_description;type:text" json:"formation_description"`

	FormationCreatedAt time.Time `gorm:"column:formation_created_at;autoCreateTime" json:"formation_created_at"`
	FormationUpdatedAt time.Time `gorm:"column:formation_updated_at;autoUpdateTime" json:"formation_updated_at"`
}

func (FormationModel) TableName() string { return "formations" }

func (f *FormationModel) BeforeCreate(tx *gorm.DB) error {
	if f.FormationID == uuid.Nil {
		f.FormationID = uuid.New()
	}
	return nil
}
