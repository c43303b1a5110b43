package domain

import (
	"fmt"
	"strings"
)

// Segment is one time-bounded unit of transcript text
type Segment struct {
	Index int
	Start Timecode
	End   Timecode
	Text  string
}

// Contains reports whether t falls inside the segment, inclusive on both bounds
func (s Segment) Contains(t Timecode) bool {
	return s.Start <= t && t <= s.End
}

// Document is a parsed subtitle transcript. Segments keep input order.
type Document struct {
	Segments []Segment
}

// Len returns the number of segments
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Segments)
}

// Text returns plain text concatenation of all segments
func (d *Document) Text() string {
	var parts []string
	for _, seg := range d.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// SRT returns the document in subtitle block format
func (d *Document) SRT() string {
	var sb strings.Builder

	for _, seg := range d.Segments {
		sb.WriteString(fmt.Sprintf("%d\n", seg.Index))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", seg.Start.SRT(), seg.End.SRT()))
		if text := strings.TrimSpace(seg.Text); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
