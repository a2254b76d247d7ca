package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize is 500 MB per file.
const MaxUploadSize = 500 << 20

// Extension allow-list for lesson uploads: videos, pdf, office, archives,
// images. Matches the admin frontend's file picker.
var allowedUploadExts = map[string]struct{}{
	"mp4": {}, "avi": {}, "mov": {}, "wmv": {}, "flv": {}, "mkv": {}, "webm": {},
	"pdf": {},
	"doc": {}, "docx": {},
	"xls": {}, "xlsx": {},
	"ppt": {}, "pptx": {},
	"zip": {}, "rar": {}, "7z": {}, "tar": {}, "gz": {},
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "svg": {},
}

// ValidateUpload rejects disallowed files before any transaction starts.
func ValidateUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid uploaded file")
	}
	if fh.Size > MaxUploadSize {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("File %q exceeds the 500 MB limit", fh.Filename))
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if _, ok := allowedUploadExts[ext]; !ok {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("File format %q is not supported", ext))
	}
	return nil
}

// ValidateUploads runs ValidateUpload over a batch.
func ValidateUploads(fhs []*multipart.FileHeader) error {
	for _, fh := range fhs {
		if err := ValidateUpload(fh); err != nil {
			return err
		}
	}
	return nil
}
