package service

import (
	"strings"

	"afrikstudent_backend/internals/features/academics/lessons/model"
)

// linkTypes is the set of attachment types that mark an external link.
var linkTypes = map[string]struct{}{
	model.AttachmentTypeYoutube:     {},
	model.AttachmentTypeGoogleDrive: {},
	model.AttachmentTypeTiktok:      {},
	model.AttachmentTypeVimeo:       {},
	model.AttachmentTypeDropbox:     {},
	model.AttachmentTypeOnedrive:    {},
}

// IsLinkType reports whether t is one of the external-link service types.
func IsLinkType(t string) bool {
	_, ok := linkTypes[t]
	return ok
}

// ClassifyFile maps a file's mime type and extension to an attachment type.
// Checks run in priority order; first match wins, default "other".
func ClassifyFile(mimeType, extension string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	extension = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))

	if strings.HasPrefix(mimeType, "video/") {
		return model.AttachmentTypeVideo
	}
	if strings.HasPrefix(mimeType, "image/") {
		return model.AttachmentTypeImage
	}
	if mimeType == "application/pdf" {
		return model.AttachmentTypePDF
	}
	if extIn(extension, "doc", "docx") || strings.Contains(mimeType, "word") {
		return model.AttachmentTypeWord
	}
	if extIn(extension, "xls", "xlsx") || strings.Contains(mimeType, "excel") || strings.Contains(mimeType, "spreadsheet") {
		return model.AttachmentTypeExcel
	}
	if extIn(extension, "ppt", "pptx") || strings.Contains(mimeType, "powerpoint") || strings.Contains(mimeType, "presentation") {
		return model.AttachmentTypePowerpoint
	}
	if extIn(extension, "zip", "rar", "7z", "tar", "gz") || strings.Contains(mimeType, "zip") || strings.Contains(mimeType, "compressed") {
		return model.AttachmentTypeArchive
	}

	return model.AttachmentTypeOther
}

// ClassifyLink maps an external URL to a link-service attachment type.
func ClassifyLink(url string) string {
	url = strings.ToLower(url)

	switch {
	case strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be"):
		return model.AttachmentTypeYoutube
	case strings.Contains(url, "drive.google.com"):
		return model.AttachmentTypeGoogleDrive
	case strings.Contains(url, "tiktok.com"):
		return model.AttachmentTypeTiktok
	case strings.Contains(url, "vimeo.com"):
		return model.AttachmentTypeVimeo
	case strings.Contains(url, "dropbox.com"):
		return model.AttachmentTypeDropbox
	case strings.Contains(url, "onedrive.live.com") || strings.Contains(url, "1drv.ms"):
		return model.AttachmentTypeOnedrive
	}

	return model.AttachmentTypeOther
}

func extIn(ext string, candidates ...string) bool {
	for _, c := range candidates {
		if ext == c {
			return true
		}
	}
	return false
}
