package dto

import (
	"time"

	"github.com/google/uuid"

	"afrikstudent_backend/internals/features/academics/lessons/model"
)

type AttachmentDTO struct {
	AttachmentID         uuid.UUID `json:"attachment_id"`
	AttachmentName       string    `json:"attachment_name"`
	AttachmentURL        string    `json:"attachment_url"`
	AttachmentType       string    `json:"attachment_type"`
	AttachmentIsExternal bool      `json:"attachment_is_external"`
	AttachmentCreatedAt  time.Time `json:"attachment_created_at"`
}

// ModuleLiteDTO is the owning module without its own lesson list, to avoid
// unbounded nested expansion in lesson payloads.
type ModuleLiteDTO struct {
	ModuleID          uuid.UUID `json:"module_id"`
	ModuleTitle       string    `json:"module_title"`
	ModuleDescription *string   `json:"module_description"`
	ModuleOrder       int       `json:"module_order"`
	ModuleFormationID uuid.UUID `json:"module_formation_id"`
}

type LessonDTO struct {
	LessonID         uuid.UUID       `json:"lesson_id"`
	LessonTitle      string          `json:"lesson_title"`
	LessonContent    *string         `json:"lesson_content"`
	LessonOrder      *int            `json:"lesson_order"`
	LessonModuleID   *uuid.UUID      `json:"lesson_module_id"`
	LessonCreatedAt  time.Time       `json:"lesson_created_at"`
	LessonUpdatedAt  time.Time       `json:"lesson_updated_at"`
	Module           *ModuleLiteDTO  `json:"module,omitempty"`
	Attachments      []AttachmentDTO `json:"attachments"`
	AttachmentsCount int             `json:"attachments_count"`
}

// ===========================
// Requests
// ===========================

type ExternalLinkInput struct {
	URL  string `json:"url" validate:"required,url"`
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"omitempty,oneof=youtube google_drive tiktok vimeo dropbox onedrive other"`
}

type CreateLessonRequest struct {
	LessonTitle    string     `json:"lesson_title" form:"lesson_title" validate:"required,max=255"`
	LessonContent  *string    `json:"lesson_content" form:"lesson_content"`
	LessonModuleID *uuid.UUID `json:"lesson_module_id" form:"lesson_module_id"`
	LessonOrder    *int       `json:"lesson_order" form:"lesson_order" validate:"omitempty,min=1"`

	ExternalLinks []ExternalLinkInput `json:"external_links" validate:"omitempty,dive"`
}

type UpdateLessonRequest struct {
	LessonTitle    *string    `json:"lesson_title" form:"lesson_title" validate:"omitempty,max=255"`
	LessonContent  *string    `json:"lesson_content" form:"lesson_content"`
	LessonModuleID *uuid.UUID `json:"lesson_module_id" form:"lesson_module_id"`
	LessonOrder    *int       `json:"lesson_order" form:"lesson_order" validate:"omitempty,min=1"`

	ExternalLinks     []ExternalLinkInput `json:"external_links" validate:"omitempty,dive"`
	DeleteAttachments []uuid.UUID         `json:"delete_attachments"`
}

// ===========================
// Converters
// ===========================

func ToAttachmentDTO(m model.AttachmentModel) AttachmentDTO {
	return AttachmentDTO{
		AttachmentID:         m.AttachmentID,
		AttachmentName:       m.AttachmentName,
		AttachmentURL:        m.AttachmentURL,
		AttachmentType:       m.AttachmentType,
		AttachmentIsExternal: m.AttachmentIsExternal,
		AttachmentCreatedAt:  m.AttachmentCreatedAt,
	}
}

func ToLessonDTO(m model.LessonModel, module *ModuleLiteDTO) LessonDTO {
	atts := make([]AttachmentDTO, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		atts = append(atts, ToAttachmentDTO(a))
	}
	return LessonDTO{
		LessonID:         m.LessonID,
		LessonTitle:      m.LessonTitle,
		LessonContent:    m.LessonContent,
		LessonOrder:      m.LessonOrder,
		LessonModuleID:   m.LessonModuleID,
		LessonCreatedAt:  m.LessonCreatedAt,
		LessonUpdatedAt:  m.LessonUpdatedAt,
		Module:           module,
		Attachments:      atts,
		AttachmentsCount: len(atts),
	}
}
