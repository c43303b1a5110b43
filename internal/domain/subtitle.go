package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const rangeSeparator = "-->"

// blankLine splits blocks on one or more empty (or whitespace-only) lines
var blankLine = regexp.MustCompile(`\n[ \t]*\n\s*`)

// ParseDocument converts raw subtitle text into segments in input order.
// Blocks are not sorted or deduplicated; consumers must tolerate overlap.
func ParseDocument(text string) (*Document, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyDocument
	}

	blocks := blankLine.Split(text, -1)
	doc := &Document{Segments: make([]Segment, 0, len(blocks))}

	for i, block := range blocks {
		seg, err := parseBlock(i+1, block)
		if err != nil {
			return nil, err
		}
		doc.Segments = append(doc.Segments, seg)
	}

	return doc, nil
}

func parseBlock(position int, block string) (Segment, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return Segment{}, &BlockError{Block: position, Reason: "missing time range line"}
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || index < 1 {
		return Segment{}, &BlockError{Block: position, Reason: "index must be a positive integer"}
	}

	startText, endText, ok := strings.Cut(strings.TrimSpace(lines[1]), rangeSeparator)
	if !ok {
		return Segment{}, &BlockError{Block: position, Reason: "time range lacks separator"}
	}

	start, err := ParseTimecode(strings.TrimSpace(startText))
	if err != nil {
		return Segment{}, &BlockError{Block: position, Reason: "start", Err: err}
	}
	// Some engines append positioning hints after the end timecode
	endFields := strings.Fields(endText)
	if len(endFields) == 0 {
		return Segment{}, &BlockError{Block: position, Reason: "end", Err: &TimecodeError{Input: endText, Reason: "empty"}}
	}
	end, err := ParseTimecode(endFields[0])
	if err != nil {
		return Segment{}, &BlockError{Block: position, Reason: "end", Err: err}
	}
	if end < start {
		return Segment{}, &BlockError{Block: position, Reason: "end precedes start"}
	}

	textLines := make([]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		if line = strings.TrimSpace(line); line != "" {
			textLines = append(textLines, line)
		}
	}

	return Segment{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.Join(textLines, " "),
	}, nil
}
