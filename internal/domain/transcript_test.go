package domain

import (
	"strings"
	"testing"
)

func TestDocument_Text(t *testing.T) {
	doc := &Document{
		Segments: []Segment{
			{Index: 1, Start: 0, End: TimecodeFromSeconds(3.5), Text: "Hello world."},
			{Index: 2, Start: TimecodeFromSeconds(3.5), End: TimecodeFromSeconds(7), Text: ""},
			{Index: 3, Start: TimecodeFromSeconds(7), End: TimecodeFromSeconds(8), Text: "How are you?"},
		},
	}

	result := doc.Text()
	expected := "Hello world. How are you?"

	if result != expected {
		t.Errorf("Text() = %q, want %q", result, expected)
	}
}

func TestDocument_SRT(t *testing.T) {
	doc := &Document{
		Segments: []Segment{
			{Index: 1, Start: 0, End: TimecodeFromSeconds(3.5), Text: "Hello world."},
			{Index: 2, Start: TimecodeFromSeconds(3.5), End: TimecodeFromSeconds(7.2), Text: "How are you?"},
		},
	}

	result := doc.SRT()

	if !strings.Contains(result, "00:00:00,000 --> 00:00:03,500") {
		t.Errorf("SRT() missing first timestamp, got:\n%s", result)
	}
	if !strings.Contains(result, "00:00:03,500 --> 00:00:07,200") {
		t.Errorf("SRT() missing second timestamp, got:\n%s", result)
	}

	parsed, err := ParseDocument(result)
	if err != nil {
		t.Fatalf("ParseDocument(SRT()) error = %v", err)
	}
	if parsed.Len() != 2 || parsed.Segments[1].Text != "How are you?" {
		t.Errorf("written document did not parse back: %+v", parsed.Segments)
	}
}

func TestSegment_ContainsInclusive(t *testing.T) {
	seg := Segment{Start: TimecodeFromSeconds(1), End: TimecodeFromSeconds(2.5)}

	tests := []struct {
		at   float64
		want bool
	}{
		{0.999, false},
		{1, true},
		{2, true},
		{2.5, true},
		{2.501, false},
	}
	for _, tt := range tests {
		if got := seg.Contains(TimecodeFromSeconds(tt.at)); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}
