package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/playback"
	"github.com/barrard/video-transcribe/internal/ports"
)

// DefaultTranscriptCacheSize bounds the parsed transcripts kept in memory
const DefaultTranscriptCacheSize = 64

// Transcript is a parsed subtitle artifact ready for playback queries
type Transcript struct {
	Name     string
	Document *domain.Document
	Engine   *playback.Engine
	ModTime  time.Time
	Size     int64
}

// NewTranscript parses raw subtitle text into a Transcript
func NewTranscript(name string, data []byte) (*Transcript, error) {
	doc, err := domain.ParseDocument(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Transcript{
		Name:     name,
		Document: doc,
		Engine:   playback.NewEngine(doc),
		Size:     int64(len(data)),
	}, nil
}

// TranscriptService loads subtitle artifacts and caches their parsed form.
// Entries are keyed by path and invalidated when size or mtime change.
type TranscriptService struct {
	store ports.MediaStore
	cache *lru.Cache[string, *Transcript]
}

// NewTranscriptService creates a loader with an LRU of size entries
func NewTranscriptService(store ports.MediaStore, size int) (*TranscriptService, error) {
	if size <= 0 {
		size = DefaultTranscriptCacheSize
	}
	cache, err := lru.New[string, *Transcript](size)
	if err != nil {
		return nil, err
	}
	return &TranscriptService{store: store, cache: cache}, nil
}

// Load returns the parsed transcript of a storage name.
// A missing artifact yields domain.ErrSubtitlesNotReady.
func (s *TranscriptService) Load(ctx context.Context, storageName string) (*Transcript, error) {
	info, err := s.store.SubtitleInfo(ctx, storageName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSubtitlesNotReady, storageName)
		}
		return nil, err
	}

	key := s.store.SubtitlePath(storageName)
	if cached, ok := s.cache.Get(key); ok && cached.ModTime.Equal(info.ModTime()) && cached.Size == info.Size() {
		return cached, nil
	}

	data, err := s.store.ReadSubtitle(ctx, storageName)
	if err != nil {
		return nil, err
	}

	transcript, err := NewTranscript(domain.SubtitleName(storageName), data)
	if err != nil {
		return nil, err
	}
	transcript.ModTime = info.ModTime()
	transcript.Size = info.Size()

	s.cache.Add(key, transcript)
	return transcript, nil
}

// Cached reports how many transcripts are held in memory
func (s *TranscriptService) Cached() int {
	return s.cache.Len()
}

// Purge drops every cached transcript
func (s *TranscriptService) Purge() {
	s.cache.Purge()
}
