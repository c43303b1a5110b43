// Package storage keeps uploaded media and produced subtitle artifacts on an
// afero filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// partialSuffix marks uploads still being written; they never match a media extension
const partialSuffix = ".part"

// Store implements ports.MediaStore over two directories of one filesystem
type Store struct {
	fs           afero.Fs
	uploadDir    string
	processedDir string
	now          func() time.Time
}

// NewStore creates a store. Pass afero.NewOsFs() in production.
func NewStore(fs afero.Fs, uploadDir, processedDir string) *Store {
	return &Store{
		fs:           fs,
		uploadDir:    uploadDir,
		processedDir: processedDir,
		now:          time.Now,
	}
}

// EnsureDirs creates the upload and processed directories
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.uploadDir, s.processedDir} {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (s *Store) UploadDir() string {
	return s.uploadDir
}

func (s *Store) ProcessedDir() string {
	return s.processedDir
}

func (s *Store) MediaPath(storageName string) string {
	return filepath.Join(s.uploadDir, storageName)
}

func (s *Store) SubtitlePath(storageName string) string {
	return filepath.Join(s.processedDir, domain.SubtitleName(storageName))
}

// Save writes r under "<unix-millis>-<sanitized name>". The data lands in a
// partial file first so listings never see half-written media.
func (s *Store) Save(ctx context.Context, originalName string, r io.Reader) (domain.MediaArtifact, error) {
	if err := s.fs.MkdirAll(s.uploadDir, 0755); err != nil {
		return domain.MediaArtifact{}, err
	}

	uploadedAt := s.now()
	clean := SanitizeFilename(originalName)
	storageName, err := s.uniqueName(uploadedAt, clean)
	if err != nil {
		return domain.MediaArtifact{}, err
	}

	finalPath := s.MediaPath(storageName)
	partPath := finalPath + partialSuffix

	dest, err := s.fs.Create(partPath)
	if err != nil {
		return domain.MediaArtifact{}, err
	}

	_, err = io.Copy(dest, &contextReader{ctx: ctx, r: r})
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(partPath)
		return domain.MediaArtifact{}, fmt.Errorf("write upload: %w", err)
	}

	if err := s.fs.Rename(partPath, finalPath); err != nil {
		_ = s.fs.Remove(partPath)
		return domain.MediaArtifact{}, err
	}

	return domain.MediaArtifact{
		StorageName:  storageName,
		OriginalName: originalName,
		UploadedAt:   uploadedAt,
	}, nil
}

// uniqueName bumps the timestamp prefix until the name is unused
func (s *Store) uniqueName(at time.Time, clean string) (string, error) {
	millis := at.UnixMilli()
	for i := 0; i < 1000; i++ {
		name := fmt.Sprintf("%d-%s", millis, clean)
		taken, err := afero.Exists(s.fs, s.MediaPath(name))
		if err != nil {
			return "", err
		}
		partial, err := afero.Exists(s.fs, s.MediaPath(name)+partialSuffix)
		if err != nil {
			return "", err
		}
		if !taken && !partial {
			return name, nil
		}
		millis++
	}
	return "", fmt.Errorf("no free storage name for %s", clean)
}

// ListMedia returns regular file names in the upload directory, sorted by name
func (s *Store) ListMedia(ctx context.Context) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.uploadDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists reports whether storageName is a regular file in the upload directory
func (s *Store) Exists(ctx context.Context, storageName string) (bool, error) {
	info, err := s.fs.Stat(s.MediaPath(storageName))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (s *Store) SubtitleExists(ctx context.Context, storageName string) (bool, error) {
	return afero.Exists(s.fs, s.SubtitlePath(storageName))
}

func (s *Store) SubtitleInfo(ctx context.Context, storageName string) (os.FileInfo, error) {
	return s.fs.Stat(s.SubtitlePath(storageName))
}

func (s *Store) ReadSubtitle(ctx context.Context, storageName string) ([]byte, error) {
	return afero.ReadFile(s.fs, s.SubtitlePath(storageName))
}

// Stats counts uploads and their total size
func (s *Store) Stats(ctx context.Context) (itemCount int, totalSize int64, err error) {
	entries, err := afero.ReadDir(s.fs, s.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		itemCount++
		totalSize += entry.Size()
	}
	return itemCount, totalSize, nil
}

// UploadFS exposes the upload directory for static serving
func (s *Store) UploadFS() http.FileSystem {
	return afero.NewHttpFs(afero.NewReadOnlyFs(afero.NewBasePathFs(s.fs, s.uploadDir)))
}

// ProcessedFS exposes the processed directory for static serving
func (s *Store) ProcessedFS() http.FileSystem {
	return afero.NewHttpFs(afero.NewReadOnlyFs(afero.NewBasePathFs(s.fs, s.processedDir)))
}

// contextReader stops a copy once ctx is cancelled
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var _ ports.MediaStore = (*Store)(nil)
