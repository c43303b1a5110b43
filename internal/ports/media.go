package ports

import (
	"context"
	"io"
	"os"

	"github.com/barrard/video-transcribe/internal/domain"
)

// MediaStore persists uploaded media and the subtitle artifacts derived from it
type MediaStore interface {
	// Save stores an upload under a unique storage name
	Save(ctx context.Context, originalName string, r io.Reader) (domain.MediaArtifact, error)

	// ListMedia returns the storage names in the upload directory, unfiltered
	ListMedia(ctx context.Context) ([]string, error)

	// MediaPath returns the on-disk path of an uploaded artifact
	MediaPath(storageName string) string

	// SubtitlePath returns where the subtitle artifact of a storage name lives
	SubtitlePath(storageName string) string

	// Exists reports whether the uploaded artifact is present
	Exists(ctx context.Context, storageName string) (bool, error)

	// SubtitleExists reports whether the subtitle artifact has been produced
	SubtitleExists(ctx context.Context, storageName string) (bool, error)

	// SubtitleInfo stats the subtitle artifact; os.ErrNotExist until it is produced
	SubtitleInfo(ctx context.Context, storageName string) (os.FileInfo, error)

	// ReadSubtitle returns the raw subtitle artifact
	ReadSubtitle(ctx context.Context, storageName string) ([]byte, error)

	// Stats returns the number of uploads and their total size in bytes
	Stats(ctx context.Context) (itemCount int, totalSize int64, err error)
}
