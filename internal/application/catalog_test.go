package application

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/barrard/video-transcribe/internal/domain"
)

func TestCatalogService_ListWithoutSubtitles(t *testing.T) {
	store := newMockStore("a.mp4")
	catalog := NewCatalogService(store, nil)

	entries, err := catalog.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := domain.CatalogEntry{Filename: "a", VideoURL: "/video/a.mp4", SubtitlesURL: "/subtitles/a.srt"}
	if len(entries) != 1 || entries[0] != want {
		t.Fatalf("List() = %+v, want [%+v]", entries, want)
	}
}

func TestCatalogService_ListFiltersAndSorts(t *testing.T) {
	store := newMockStore("b.mp4", "notes.txt", "a.MP4", "c.mkv", "1700-x.mp4.part")
	catalog := NewCatalogService(store, nil)

	entries, err := catalog.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.Filename)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("List() filenames = %v, want [a b]", got)
	}

	withMKV := NewCatalogService(store, []string{".mp4", ".mkv"})
	entries, _ = withMKV.List(context.Background())
	if len(entries) != 3 {
		t.Errorf("List() with .mkv = %d entries, want 3", len(entries))
	}
}

func TestCatalogService_Unavailable(t *testing.T) {
	store := newMockStore()
	store.listErr = os.ErrPermission
	catalog := NewCatalogService(store, nil)

	_, err := catalog.List(context.Background())
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("List() error = %v, want ErrCatalogUnavailable", err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("List() error should keep its cause: %v", err)
	}
}

func TestCatalogService_ResolveIsPure(t *testing.T) {
	catalog := NewCatalogService(newMockStore(), nil)

	entry := catalog.Resolve("1700-my clip.mp4")
	if entry.VideoURL != "/video/1700-my%20clip.mp4" {
		t.Errorf("VideoURL = %q", entry.VideoURL)
	}
	if entry.SubtitlesURL != "/subtitles/1700-my%20clip.srt" {
		t.Errorf("SubtitlesURL = %q", entry.SubtitlesURL)
	}
}

func TestCatalogService_StatusAndStats(t *testing.T) {
	store := newMockStore("a.mp4", "b.mp4")
	store.writeSubtitle("a.mp4", helloWorldSRT, testModTime)
	catalog := NewCatalogService(store, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		storage   string
		wantMedia bool
		wantReady bool
	}{
		{"transcribed", "a.mp4", true, true},
		{"pending", "b.mp4", true, false},
		{"unknown", "zzz.mp4", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := catalog.Status(ctx, tt.storage)
			if err != nil {
				t.Fatalf("Status() error = %v", err)
			}
			if status.MediaExists != tt.wantMedia || status.SubtitlesReady != tt.wantReady {
				t.Errorf("Status() = %+v", status)
			}
		})
	}

	stats, err := catalog.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ItemCount != 2 || stats.TotalSize != int64(2*len("video")) {
		t.Errorf("Stats() = %+v", stats)
	}
}
