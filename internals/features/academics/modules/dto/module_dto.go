package dto

import (
	"time"

	"github.com/google/uuid"

	lessonDTO "afrikstudent_backend/internals/features/academics/lessons/dto"
	"afrikstudent_backend/internals/features/academics/modules/model"
)

// ===========================
// Responses
// ===========================

type FormationLiteDTO struct {
	FormationID    uuid.UUID `json:"formation_id"`
	FormationTitle string    `json:"formation_title"`
}

type ModuleDTO struct {
	ModuleID          uuid.UUID `json:"module_id"`
	ModuleTitle       string    `json:"module_title"`
	ModuleDescription *string   `json:"module_description"`
	ModuleOrder       int       `json:"module_order"`
	ModuleFormationID uuid.UUID `json:"module_formation_id"`
	ModuleCreatedAt   time.Time `json:"module_created_at"`
	ModuleUpdatedAt   time.Time `json:"module_updated_at"`

	Formation *FormationLiteDTO     `json:"formation,omitempty"`
	Lessons   []lessonDTO.LessonDTO `json:"lessons"`
}

// ===========================
// Requests
// ===========================

// NestedLessonInput is a lesson carried inside a module payload. With an ID
// it names an existing lesson to pull into this module; without one it
// describes a lesson to create.
type NestedLessonInput struct {
	ID            *uuid.UUID `json:"id"`
	LessonTitle   string     `json:"lesson_title" validate:"required_without=ID,omitempty,max=255"`
	LessonContent *string    `json:"lesson_content"`
	LessonOrder   *int       `json:"lesson_order" validate:"omitempty,min=1"`
}

type CreateModuleRequest struct {
	ModuleTitle       string    `json:"module_title" validate:"required,max=255"`
	ModuleDescription *string   `json:"module_description"`
	ModuleOrder       int       `json:"module_order" validate:"min=0"`
	ModuleFormationID uuid.UUID `json:"module_formation_id" validate:"required"`

	Lessons []NestedLessonInput `json:"lessons" validate:"omitempty,dive"`
}

type UpdateModuleRequest struct {
	ModuleTitle       *string    `json:"module_title" validate:"omitempty,max=255"`
	ModuleDescription *string    `json:"module_description"`
	ModuleOrder       *int       `json:"module_order" validate:"omitempty,min=0"`
	ModuleFormationID *uuid.UUID `json:"module_formation_id"`

	Lessons       []NestedLessonInput `json:"lessons" validate:"omitempty,dive"`
	DeleteLessons []uuid.UUID         `json:"delete_lessons"`
}

// ===========================
// Converters
// ===========================

func ToModuleDTO(m model.ModuleModel) ModuleDTO {
	out := ModuleDTO{
		ModuleID:          m.ModuleID,
		ModuleTitle:       m.ModuleTitle,
		ModuleDescription: m.ModuleDescription,
		ModuleOrder:       m.ModuleOrder,
		ModuleFormationID: m.ModuleFormationID,
		ModuleCreatedAt:   m.ModuleCreatedAt,
		ModuleUpdatedAt:   m.ModuleUpdatedAt,
		Lessons:           make([]lessonDTO.LessonDTO, 0, len(m.Lessons)),
	}
	if m.Formation != nil {
		out.Formation = &FormationLiteDTO{
			FormationID:    m.Formation.FormationID,
			FormationTitle: m.Formation.FormationTitle,
		}
	}
	for _, l := range m.Lessons {
		out.Lessons = append(out.Lessons, lessonDTO.ToLessonDTO(l, nil))
	}
	return out
}
