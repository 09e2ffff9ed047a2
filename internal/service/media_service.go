package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/pkg/storage"
)

// maxUploadSize caps a single attachment at 50 MiB
const maxUploadSize = 50 << 20

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".pdf": true, ".mp4": true, ".mov": true,
	".doc": true, ".docx": true, ".txt": true, ".md": true,
}

// MediaService uploads content attachments to object storage
type MediaService struct {
	storage *storage.S3Client
}

// NewMediaService creates a new MediaService. storage may be nil when no
// bucket is configured; uploads then fail with a clear error.
func NewMediaService(s3 *storage.S3Client) *MediaService {
	return &MediaService{storage: s3}
}

// Upload validates and stores one attachment, returning its public URL
func (s *MediaService) Upload(ctx context.Context, header *multipart.FileHeader) (*storage.UploadResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("file storage is not configured")
	}
	if header.Size > maxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, maxUploadSize)
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: file type %q is not allowed", common.ErrInvalidInput, ext)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.GenerateKey("content", uuid.NewString()+ext)
	return s.storage.Upload(ctx, key, io.LimitReader(file, maxUploadSize), contentType, header.Size)
}
