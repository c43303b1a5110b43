package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/barrard/video-transcribe/internal/domain"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 << 20, "5.0 MB"},
		{3 << 30, "3.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatSize(tt.input)
			if result != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatSegmentLine(t *testing.T) {
	seg := domain.Segment{
		Index: 1,
		Start: domain.Timecode(time.Second),
		End:   domain.Timecode(64 * time.Second),
		Text:  "Hello\nWorld",
	}

	tests := []struct {
		name   string
		maxLen int
		want   string
	}{
		{"fits", 40, "  0:01-1:04  Hello World"},
		{"truncated", 8, "  0:01-1:04  Hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSegmentLine(seg, tt.maxLen)
			if got != tt.want {
				t.Errorf("FormatSegmentLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSegmentLine_MultibyteTruncation(t *testing.T) {
	seg := domain.Segment{Text: "héllo wörld ünïcode"}
	got := FormatSegmentLine(seg, 10)
	if !strings.HasSuffix(got, "héllo w...") {
		t.Errorf("FormatSegmentLine() = %q", got)
	}
}
