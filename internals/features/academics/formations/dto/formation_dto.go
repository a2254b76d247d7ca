package dto

import (
	"time"

	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/academics/formations/model"
	moduleDTO "afrikstudent_backend/internals/features/academics/modules/dto"
)

type FormationDTO struct {
	FormationID          uuid.UUID `json:"formation_id"`
	FormationTitle       string    `json:"formation_title"`
	FormationDescription *string   `json:"formation_description"`
	FormationCreatedAt   time.Time `json:"formation_created_at"`
	FormationUpdatedAt   time.Time `json:"formation_updated_at"`

	Modules []moduleDTO.ModuleDTO `json:"modules,omitempty"`
}

type CreateFormationRequest struct {
	FormationTitle       string  `json:"formation_title" validate:"required,max=255"`
	FormationDescription *string `json:"formation_description"`
}

type UpdateFormationRequest struct {
	FormationTitle       *string `json:"formation_title" validate:"omitempty,max=255"`
	FormationDescription *string `json:"formation_description"`
}

func ToFormationDTO(m model.FormationModel, modules []moduleDTO.ModuleDTO) FormationDTO {
	return FormationDTO{
		FormationID:          m.FormationID,
		FormationTitle:       m.FormationTitle,
		FormationDescription: m.FormationDescription,
		FormationCreatedAt:   m.FormationCreatedAt,
		FormationUpdatedAt:   m.FormationUpdatedAt,
		Modules:              modules,
	}
}
