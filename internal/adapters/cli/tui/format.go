package tui

import (
	"fmt"
	"strings"

	"github.com/barrard/video-transcribe/internal/domain"
)

// FormatSize formats a byte count with a binary unit
// Examples: 512 -> "512 B", 1536 -> "1.5 KB", 5242880 -> "5.0 MB"
func FormatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatSpan formats a segment's bounds as "M:SS-M:SS"
func FormatSpan(seg domain.Segment) string {
	return seg.Start.Format() + "-" + seg.End.Format()
}

// FormatSegmentLine formats a segment as a single line for display
// Example: "  0:01-0:04  Hello world"
func FormatSegmentLine(seg domain.Segment, maxTextLen int) string {
	text := strings.Join(strings.Fields(seg.Text), " ")
	if maxTextLen > 3 && len([]rune(text)) > maxTextLen {
		text = string([]rune(text)[:maxTextLen-3]) + "..."
	}
	return fmt.Sprintf("%11s  %s", FormatSpan(seg), text)
}
