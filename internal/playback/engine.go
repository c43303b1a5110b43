// Package playback maps a playback clock onto the active segments of a
// subtitle document.
package playback

import (
	"fmt"
	"sort"

	"github.com/barrard/video-transcribe/internal/domain"
)

// Engine answers active-segment queries for one immutable document.
// It is safe for concurrent use.
type Engine struct {
	segments []domain.Segment

	// byStart holds document positions ordered by segment start;
	// maxEnd[i] is the largest end among byStart[0..i].
	byStart []int
	maxEnd  []domain.Timecode
}

// NewEngine indexes doc for playback queries. A nil document yields an empty engine.
func NewEngine(doc *domain.Document) *Engine {
	var segments []domain.Segment
	if doc != nil {
		segments = append(segments, doc.Segments...)
	}

	byStart := make([]int, len(segments))
	for i := range byStart {
		byStart[i] = i
	}
	sort.SliceStable(byStart, func(a, b int) bool {
		return segments[byStart[a]].Start < segments[byStart[b]].Start
	})

	maxEnd := make([]domain.Timecode, len(byStart))
	for i, pos := range byStart {
		maxEnd[i] = segments[pos].End
		if i > 0 && maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &Engine{
		segments: segments,
		byStart:  byStart,
		maxEnd:   maxEnd,
	}
}

// Segments returns the indexed segments in document order
func (e *Engine) Segments() []domain.Segment {
	return append([]domain.Segment(nil), e.segments...)
}

// ActiveSegments returns every segment whose [start, end] contains t, in document order
func (e *Engine) ActiveSegments(t domain.Timecode) []domain.Segment {
	positions := e.activePositions(t)
	if len(positions) == 0 {
		return nil
	}

	out := make([]domain.Segment, len(positions))
	for i, pos := range positions {
		out[i] = e.segments[pos]
	}
	return out
}

// ActivePositions returns the document positions of the active segments, ascending
func (e *Engine) ActivePositions(t domain.Timecode) []int {
	return e.activePositions(t)
}

func (e *Engine) activePositions(t domain.Timecode) []int {
	// segments in byStart[:n] start at or before t
	n := sort.Search(len(e.byStart), func(i int) bool {
		return e.segments[e.byStart[i]].Start > t
	})

	var positions []int
	for i := n - 1; i >= 0; i-- {
		if e.maxEnd[i] < t {
			break
		}
		if pos := e.byStart[i]; e.segments[pos].End >= t {
			positions = append(positions, pos)
		}
	}

	sort.Ints(positions)
	return positions
}

// Seek returns the start of the segment carrying index. With duplicate
// indices the first one in document order wins.
func (e *Engine) Seek(index int) (domain.Timecode, error) {
	for _, seg := range e.segments {
		if seg.Index == index {
			return seg.Start, nil
		}
	}
	return 0, fmt.Errorf("%w: index %d", domain.ErrSegmentNotFound, index)
}
