package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment type values. File types come from mime/extension classification,
// link types from URL heuristics.
const (
	AttachmentTypeVideo      = "video"
	AttachmentTypeImage      = "image"
	AttachmentTypePDF        = "pdf"
	AttachmentTypeWord       = "word"
	AttachmentTypeExcel      = "excel"
	AttachmentTypePowerpoint = "powerpoint"
	AttachmentTypeArchive    = "archive"
	AttachmentTypeYoutube    = "youtube"
	AttachmentTypeGoogleDrive = "google_drive"
	AttachmentTypeTiktok     = "tiktok"
	AttachmentTypeVimeo      = "vimeo"
	AttachmentTypeDropbox    = "dropbox"
	AttachmentTypeOnedrive   = "onedrive"
	AttachmentTypeOther      = "other"
)

// AttachableTypeLesson is the only attachable owner kind today.
const AttachableTypeLesson = "Lesson"

type AttachmentModel struct {
	AttachmentID   uuid.UUID `gorm:"column:attachment_id;type:uuid;primaryKey" json:"attachment_id"`
	AttachmentName string    `gorm:"column:attachment_name;type:varchar(255);not null" json:"attachment_name"`

	// Storage key for uploaded files (e.g. "lessons/attachments/x.pdf"),
	// absolute URL for external links.
	AttachmentURL  string `gorm:"column:attachment_url;type:text;not null" json:"attachment_url"`
	AttachmentType string `gorm:"column:attachment_type;type:varchar(20);not null" json:"attachment_type"`

	AttachmentIsExternal bool `gorm:"column:attachment_is_external;not null;default:false" json:"attachment_is_external"`

	AttachableID   uuid.UUID `gorm:"column:attachable_id;type:uuid;not null;index" json:"attachable_id"`
	AttachableType string    `gorm:"column:attachable_type;type:varchar(50);not null" json:"attachable_type"`

	AttachmentCreatedAt time.Time `gorm:"column:attachment_created_at;autoCreateTime" json:"attachment_created_at"`
}

func (AttachmentModel) TableName() string { return "attachments" }

func (a *AttachmentModel) BeforeCreate(tx *gorm.DB) error {
	if a.AttachmentID == uuid.Nil {
		a.AttachmentID = uuid.New()
	}
	return nil
}
