package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"afrikstudent_backend/internals/features/academics/lessons/model"
)

func TestClassifyFile(t *testing.T) {
	cases := []struct {
		name string
		mime string
		ext  string
		want string
	}{
		{"video by mime", "video/mp4", "mp4", model.AttachmentTypeVideo},
		{"video mime wins over archive ext", "video/x-matroska", "zip", model.AttachmentTypeVideo},
		{"image by mime", "image/png", "png", model.AttachmentTypeImage},
		{"pdf exact mime", "application/pdf", "pdf", model.AttachmentTypePDF},
		{"word by ext", "application/octet-stream", "docx", model.AttachmentTypeWord},
		{"word by mime", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "bin", model.AttachmentTypeWord},
		{"excel by ext", "application/octet-stream", "xlsx", model.AttachmentTypeExcel},
		{"excel by spreadsheet mime", "application/vnd.oasis.opendocument.spreadsheet", "ods", model.AttachmentTypeExcel},
		{"powerpoint by ext", "application/octet-stream", "pptx", model.AttachmentTypePowerpoint},
		{"archive by ext", "application/octet-stream", "7z", model.AttachmentTypeArchive},
		{"archive by mime", "application/x-zip-compressed", "bin", model.AttachmentTypeArchive},
		{"tarball", "application/octet-stream", "gz", model.AttachmentTypeArchive},
		{"unknown falls through", "text/plain", "txt", model.AttachmentTypeOther},
		{"dotted ext accepted", "application/octet-stream", ".docx", model.AttachmentTypeWord},
		{"case insensitive", "APPLICATION/PDF", "PDF", model.AttachmentTypePDF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyFile(tc.mime, tc.ext))
		})
	}
}

func TestClassifyLink(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", model.AttachmentTypeYoutube},
		{"https://youtu.be/abc", model.AttachmentTypeYoutube},
		{"https://drive.google.com/file/d/xyz", model.AttachmentTypeGoogleDrive},
		{"https://www.tiktok.com/@user/video/1", model.AttachmentTypeTiktok},
		{"https://vimeo.com/12345", model.AttachmentTypeVimeo},
		{"https://www.dropbox.com/s/abc/file.pdf", model.AttachmentTypeDropbox},
		{"https://onedrive.live.com/view.aspx?id=1", model.AttachmentTypeOnedrive},
		{"https://1drv.ms/w/s!abc", model.AttachmentTypeOnedrive},
		{"https://example.com/file.pdf", model.AttachmentTypeOther},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyLink(tc.url))
		})
	}
}

func TestIsLinkType(t *testing.T) {
	assert.True(t, IsLinkType(model.AttachmentTypeYoutube))
	assert.True(t, IsLinkType(model.AttachmentTypeOnedrive))
	assert.False(t, IsLinkType(model.AttachmentTypeVideo))
	assert.False(t, IsLinkType(model.AttachmentTypeOther))
	assert.False(t, IsLinkType(""))
}
