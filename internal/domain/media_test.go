package domain

import "testing"

func TestNewCatalogEntry(t *testing.T) {
	tests := []struct {
		name        string
		storageName string
		want        CatalogEntry
	}{
		{
			name:        "plain mp4",
			storageName: "1700000000000-talk.mp4",
			want: CatalogEntry{
				Filename:     "1700000000000-talk",
				VideoURL:     "/video/1700000000000-talk.mp4",
				SubtitlesURL: "/subtitles/1700000000000-talk.srt",
			},
		},
		{
			name:        "spaces are escaped",
			storageName: "1-my talk.mp4",
			want: CatalogEntry{
				Filename:     "1-my talk",
				VideoURL:     "/video/1-my%20talk.mp4",
				SubtitlesURL: "/subtitles/1-my%20talk.srt",
			},
		},
		{
			name:        "directory components dropped",
			storageName: "uploads/a.mp4",
			want: CatalogEntry{
				Filename:     "a",
				VideoURL:     "/video/a.mp4",
				SubtitlesURL: "/subtitles/a.srt",
			},
		},
		{
			name:        "multiple dots keep all but last extension",
			storageName: "a.b.mp4",
			want: CatalogEntry{
				Filename:     "a.b",
				VideoURL:     "/video/a.b.mp4",
				SubtitlesURL: "/subtitles/a.b.srt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCatalogEntry(tt.storageName); got != tt.want {
				t.Errorf("NewCatalogEntry(%q) = %+v, want %+v", tt.storageName, got, tt.want)
			}
		})
	}
}

func TestMediaArtifact_SubtitleName(t *testing.T) {
	m := MediaArtifact{StorageName: "42-clip.mp4"}
	if got := m.SubtitleName(); got != "42-clip.srt" {
		t.Errorf("SubtitleName() = %q, want 42-clip.srt", got)
	}
}

func TestHasExtension(t *testing.T) {
	exts := []string{".mp4", ".webm"}
	tests := []struct {
		name string
		want bool
	}{
		{"a.mp4", true},
		{"a.MP4", true},
		{"a.webm", true},
		{"a.srt", false},
		{"mp4", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasExtension(tt.name, exts); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCatalogEntryStorageName(t *testing.T) {
	tests := []string{
		"1700000000000-talk.mp4",
		"1700000000000-my.talk.mp4",
		"1700000000000-My Talk #2.mp4",
		"1700000000000-caf\u00e9.mp4",
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			entry := NewCatalogEntry(name)
			if got := entry.StorageName(); got != name {
				t.Errorf("StorageName() = %q, want %q", got, name)
			}
			if got := SubtitleName(entry.StorageName()); got != entry.Filename+SubtitleExt {
				t.Errorf("SubtitleName() = %q, want %q", got, entry.Filename+SubtitleExt)
			}
		})
	}
}
