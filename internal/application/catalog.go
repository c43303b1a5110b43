package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// DefaultMediaExtensions are the uploads the catalog recognizes
var DefaultMediaExtensions = []string{".mp4"}

// MediaStatus reports the readiness of one artifact
type MediaStatus struct {
	Entry          domain.CatalogEntry `json:"entry"`
	MediaExists    bool                `json:"mediaExists"`
	SubtitlesReady bool                `json:"subtitlesReady"`
}

// CatalogStats holds upload statistics
type CatalogStats struct {
	ItemCount int
	TotalSize int64
}

// CatalogService lists uploaded media and derives their subtitle locations
type CatalogService struct {
	store      ports.MediaStore
	extensions []string
}

// NewCatalogService creates a catalog over store. Empty extensions take the default.
func NewCatalogService(store ports.MediaStore, extensions []string) *CatalogService {
	if len(extensions) == 0 {
		extensions = DefaultMediaExtensions
	}
	return &CatalogService{store: store, extensions: extensions}
}

// Extensions returns the recognized media extensions
func (s *CatalogService) Extensions() []string {
	return append([]string(nil), s.extensions...)
}

// List returns one entry per recognized media file, sorted by storage name.
// Subtitle existence is not checked; clients discover readiness on fetch.
func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	names, err := s.store.ListMedia(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	media := lo.Filter(names, func(name string, _ int) bool {
		return domain.HasExtension(name, s.extensions)
	})
	sort.Strings(media)

	return lo.Map(media, func(name string, _ int) domain.CatalogEntry {
		return s.Resolve(name)
	}), nil
}

// Resolve derives the entry for a storage name by convention
func (s *CatalogService) Resolve(storageName string) domain.CatalogEntry {
	return domain.NewCatalogEntry(storageName)
}

// Status checks whether the media and its subtitle artifact exist
func (s *CatalogService) Status(ctx context.Context, storageName string) (*MediaStatus, error) {
	exists, err := s.store.Exists(ctx, storageName)
	if err != nil {
		return nil, err
	}
	ready, err := s.store.SubtitleExists(ctx, storageName)
	if err != nil {
		return nil, err
	}
	return &MediaStatus{
		Entry:          s.Resolve(storageName),
		MediaExists:    exists,
		SubtitlesReady: ready,
	}, nil
}

// Stats returns upload statistics
func (s *CatalogService) Stats(ctx context.Context) (*CatalogStats, error) {
	count, size, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CatalogStats{
		ItemCount: count,
		TotalSize: size,
	}, nil
}
