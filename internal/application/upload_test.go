package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/barrard/video-transcribe/internal/domain"
)

func TestUploadService_Accept(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		body        io.Reader
		wantErr     error
	}{
		{"mp4", "talk.mp4", "video/mp4", strings.NewReader("v"), nil},
		{"no content type", "talk.mp4", "", strings.NewReader("v"), nil},
		{"octet stream", "talk.mp4", "application/octet-stream", strings.NewReader("v"), nil},
		{"wrong extension", "talk.mov", "video/quicktime", strings.NewReader("v"), domain.ErrUnsupportedMediaType},
		{"not a video", "talk.mp4", "text/plain; charset=utf-8", strings.NewReader("v"), domain.ErrUnsupportedMediaType},
		{"garbage content type", "talk.mp4", ";;;", strings.NewReader("v"), domain.ErrUnsupportedMediaType},
		{"no body", "talk.mp4", "video/mp4", nil, domain.ErrNoUpload},
		{"no name", "  ", "video/mp4", strings.NewReader("v"), domain.ErrNoUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			svc := NewUploadService(store, nil)

			artifact, err := svc.Accept(context.Background(), Upload{
				Filename:    tt.filename,
				ContentType: tt.contentType,
				Body:        tt.body,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Accept() error = %v, want %v", err, tt.wantErr)
				}
				if len(store.media) != 0 {
					t.Error("rejected upload was stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Accept() error = %v", err)
			}
			if artifact.StorageName != "1700000000000-talk.mp4" {
				t.Errorf("StorageName = %q", artifact.StorageName)
			}
		})
	}
}
