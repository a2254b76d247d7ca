package service

import (
	"context"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"afrikstudent_backend/internals/features/academics/lessons/dto"
	"afrikstudent_backend/internals/features/academics/lessons/model"
	ossHelper "afrikstudent_backend/internals/helpers/oss"
)

// AttachmentDir is the storage namespace for uploaded lesson files.
const AttachmentDir = "lessons/attachments"

// AttachmentStore creates and removes attachment rows together with their
// blobs. Every method takes the caller's transaction handle; the store never
// opens its own transaction.
//
// Blob lifecycle vs the DB transaction: uploads happen BEFORE the record is
// created (a failed upload leaves no record), while blob deletions are
// deferred: Detach/Delete methods only remove records and hand the storage
// keys back so the caller can delete the blobs after a successful commit.
// A rollback therefore never loses a blob that the DB still references.
type AttachmentStore struct {
	Blob ossHelper.BlobService
}

func NewAttachmentStore(blob ossHelper.BlobService) *AttachmentStore {
	return &AttachmentStore{Blob: blob}
}

// Attach uploads the file and creates the attachment record. The blob is
// written first; if the upload fails no record is created. The record's URL
// column holds the storage key so a rolled-back transaction can still find
// the blob to clean up.
func (s *AttachmentStore) Attach(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, fh *multipart.FileHeader) (model.AttachmentModel, error) {
	if fh == nil {
		return model.AttachmentModel{}, fiber.NewError(fiber.StatusBadRequest, "File not found")
	}

	key, contentType, err := s.Blob.UploadToDir(ctx, AttachmentDir, fh)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return model.AttachmentModel{}, fe
		}
		return model.AttachmentModel{}, fiber.NewError(fiber.StatusBadGateway, "Failed to store uploaded file")
	}

	ext := strings.TrimPrefix(filepath.Ext(fh.Filename), ".")
	att := model.AttachmentModel{
		AttachmentName:       fh.Filename,
		AttachmentURL:        key,
		AttachmentType:       ClassifyFile(contentType, ext),
		AttachmentIsExternal: false,
		AttachableID:         lessonID,
		AttachableType:       model.AttachableTypeLesson,
	}
	if err := tx.Create(&att).Error; err != nil {
		return model.AttachmentModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to create attachment")
	}
	return att, nil
}

// AttachLink creates an external-link attachment. No blob is written.
// The type is auto-detected from the URL unless the caller supplied one.
func (s *AttachmentStore) AttachLink(tx *gorm.DB, lessonID uuid.UUID, link dto.ExternalLinkInput) (model.AttachmentModel, error) {
	if strings.TrimSpace(link.URL) == "" || strings.TrimSpace(link.Name) == "" {
		return model.AttachmentModel{}, fiber.NewError(fiber.StatusBadRequest, "External link requires url and name")
	}

	linkType := strings.TrimSpace(link.Type)
	if linkType == "" {
		linkType = ClassifyLink(link.URL)
	}

	att := model.AttachmentModel{
		AttachmentName:       link.Name,
		AttachmentURL:        link.URL,
		AttachmentType:       linkType,
		AttachmentIsExternal: true,
		AttachableID:         lessonID,
		AttachableType:       model.AttachableTypeLesson,
	}
	if err := tx.Create(&att).Error; err != nil {
		return model.AttachmentModel{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to create external link")
	}
	return att, nil
}

// DetachMany removes the given attachment records from a lesson. IDs that do
// not belong to the lesson are silently ignored, so the call is idempotent.
// Returns the storage keys of removed non-external attachments; the caller
// deletes those blobs once the surrounding transaction has committed.
func (s *AttachmentStore) DetachMany(tx *gorm.DB, lessonID uuid.UUID, attachmentIDs []uuid.UUID) ([]string, error) {
	if len(attachmentIDs) == 0 {
		return nil, nil
	}

	var owned []model.AttachmentModel
	if err := tx.
		Where("attachment_id IN ? AND attachable_id = ? AND attachable_type = ?",
			attachmentIDs, lessonID, model.AttachableTypeLesson).
		Find(&owned).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load attachments")
	}
	if len(owned) == 0 {
		return nil, nil
	}

	keys := blobKeys(owned)
	ids := make([]uuid.UUID, 0, len(owned))
	for _, att := range owned {
		ids = append(ids, att.AttachmentID)
	}
	if err := tx.Delete(&model.AttachmentModel{}, "attachment_id IN ?", ids).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attachments")
	}
	return keys, nil
}

// DeleteAllFor removes every attachment record of a lesson and returns the
// blob keys to delete after commit. Used when the lesson itself is deleted.
func (s *AttachmentStore) DeleteAllFor(tx *gorm.DB, lessonID uuid.UUID) ([]string, error) {
	var owned []model.AttachmentModel
	if err := tx.
		Where("attachable_id = ? AND attachable_type = ?", lessonID, model.AttachableTypeLesson).
		Find(&owned).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load attachments")
	}

	keys := blobKeys(owned)
	if err := tx.
		Where("attachable_id = ? AND attachable_type = ?", lessonID, model.AttachableTypeLesson).
		Delete(&model.AttachmentModel{}).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to delete attachments")
	}
	return keys, nil
}

// CleanupBlobs best-effort deletes storage objects. Failures are logged,
// never surfaced: the records are already gone (or never existed).
func (s *AttachmentStore) CleanupBlobs(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := s.Blob.DeleteMany(ctx, keys); err != nil {
		log.Printf("[WARN] blob cleanup failed for %d object(s): %v", len(keys), err)
	}
}

func blobKeys(atts []model.AttachmentModel) []string {
	keys := make([]string, 0, len(atts))
	for _, att := range atts {
		if att.AttachmentIsExternal || !IsLocalStorageKey(att.AttachmentURL) {
			continue
		}
		keys = append(keys, att.AttachmentURL)
	}
	return keys
}

// IsLocalStorageKey reports whether url is a storage key rather than an
// absolute external URL.
func IsLocalStorageKey(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	return !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")
}
