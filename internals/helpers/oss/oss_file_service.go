package helper

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService is the uniform upload/delete facade used by the services.
Keys are opaque storage paths (e.g. "lessons/attachments/<name>"); callers
store the key in the DB and resolve it to a public URL on read.
*/
type BlobService interface {
	UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (key, contentType string, err error)
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

// --------------------------------------------------
// Aliyun OSS backed implementation
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// NewOSSBlobServiceFromEnv builds an instance from ENV. prefix is optional
// (e.g. "uploads/").
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Failed to upload to storage")
	}
	return key, ct, nil
}

func (b *OSSBlobService) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Empty storage key")
	}
	if err := b.svc.DeleteObject(ctx, key); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to delete object")
	}
	return nil
}

func (b *OSSBlobService) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := b.svc.DeleteObjects(ctx, keys); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to delete objects")
	}
	return nil
}

func (b *OSSBlobService) PublicURL(key string) string {
	return b.svc.PublicURL(key)
}

// --------------------------------------------------
// Helpers for controllers
// --------------------------------------------------

// IsMultipart reports whether the request is multipart/form-data.
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// --------------------------------------------------
// Mock for unit tests
// --------------------------------------------------

type MockBlobService struct {
	UploadToDirFn func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error)
	DeleteFn      func(ctx context.Context, key string) error
	DeleteManyFn  func(ctx context.Context, keys []string) error
	PublicURLFn   func(key string) string
}

func (m *MockBlobService) UploadToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if m.UploadToDirFn == nil {
		return "", "", errors.New("not implemented")
	}
	return m.UploadToDirFn(ctx, dir, fh)
}

func (m *MockBlobService) Delete(ctx context.Context, key string) error {
	if m.DeleteFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteFn(ctx, key)
}

func (m *MockBlobService) DeleteMany(ctx context.Context, keys []string) error {
	if m.DeleteManyFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteManyFn(ctx, keys)
}

func (m *MockBlobService) PublicURL(key string) string {
	if m.PublicURLFn == nil {
		return key
	}
	return m.PublicURLFn(key)
}
