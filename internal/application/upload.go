package application

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// Upload is one incoming media file
type Upload struct {
	Filename    string
	ContentType string // optional; checked when present
	Body        io.Reader
}

// UploadService validates incoming media and stores it
type UploadService struct {
	store      ports.MediaStore
	extensions []string
}

// NewUploadService creates an intake service. Empty extensions take the default.
func NewUploadService(store ports.MediaStore, extensions []string) *UploadService {
	if len(extensions) == 0 {
		extensions = DefaultMediaExtensions
	}
	return &UploadService{store: store, extensions: extensions}
}

// Accept validates and stores an upload. Unsupported media is rejected
// with domain.ErrUnsupportedMediaType before anything is written.
func (s *UploadService) Accept(ctx context.Context, upload Upload) (domain.MediaArtifact, error) {
	if upload.Body == nil || strings.TrimSpace(upload.Filename) == "" {
		return domain.MediaArtifact{}, domain.ErrNoUpload
	}
	if !domain.HasExtension(upload.Filename, s.extensions) {
		return domain.MediaArtifact{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, upload.Filename)
	}
	if !acceptableContentType(upload.ContentType) {
		return domain.MediaArtifact{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, upload.ContentType)
	}

	return s.store.Save(ctx, upload.Filename, upload.Body)
}

// acceptableContentType allows video types and the generic fallbacks
// browsers and curl send for unknown files
func acceptableContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "video/") || mediaType == "application/octet-stream"
}
