package application

import (
	"context"
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// Mock implementations for testing
type mockStore struct {
	mu        sync.Mutex
	media     map[string][]byte
	subtitles map[string][]byte
	modTimes  map[string]time.Time
	listErr   error
	reads     int
}

func newMockStore(media ...string) *mockStore {
	m := &mockStore{
		media:     make(map[string][]byte),
		subtitles: make(map[string][]byte),
		modTimes:  make(map[string]time.Time),
	}
	for _, name := range media {
		m.media[name] = []byte("video")
	}
	return m
}

func (m *mockStore) Save(ctx context.Context, originalName string, r io.Reader) (domain.MediaArtifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.MediaArtifact{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	name := "1700000000000-" + originalName
	m.media[name] = data
	return domain.MediaArtifact{StorageName: name, OriginalName: originalName, UploadedAt: time.UnixMilli(1700000000000)}, nil
}

func (m *mockStore) ListMedia(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var names []string
	for name := range m.media {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *mockStore) MediaPath(storageName string) string { return "/uploads/" + storageName }
func (m *mockStore) SubtitlePath(storageName string) string {
	return "/processed/" + domain.SubtitleName(storageName)
}

func (m *mockStore) Exists(ctx context.Context, storageName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.media[storageName]
	return ok, nil
}

func (m *mockStore) SubtitleExists(ctx context.Context, storageName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.subtitles[domain.SubtitleName(storageName)]
	return ok, nil
}

func (m *mockStore) SubtitleInfo(ctx context.Context, storageName string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := domain.SubtitleName(storageName)
	data, ok := m.subtitles[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: name, size: int64(len(data)), modTime: m.modTimes[name]}, nil
}

func (m *mockStore) ReadSubtitle(ctx context.Context, storageName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	data, ok := m.subtitles[domain.SubtitleName(storageName)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *mockStore) Stats(ctx context.Context) (int, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var size int64
	for _, data := range m.media {
		size += int64(len(data))
	}
	return len(m.media), size, nil
}

// writeSubtitle stores an artifact the way the engine would
func (m *mockStore) writeSubtitle(storageName, text string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := domain.SubtitleName(storageName)
	m.subtitles[name] = []byte(text)
	m.modTimes[name] = modTime
}

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return f.modTime }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

type mockTranscriber struct {
	fn func(ctx context.Context, req ports.TranscribeRequest) (*ports.TranscribeResult, error)

	mu    sync.Mutex
	calls []ports.TranscribeRequest
}

func (m *mockTranscriber) Transcribe(ctx context.Context, req ports.TranscribeRequest) (*ports.TranscribeResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.fn == nil {
		return &ports.TranscribeResult{Command: "stable-ts"}, nil
	}
	return m.fn(ctx, req)
}

func (m *mockTranscriber) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockTranscriber) Name() string       { return "stable-ts" }
func (m *mockTranscriber) IsAvailable() bool  { return true }
func (m *mockTranscriber) BinaryPath() string { return "/usr/bin/stable-ts" }
