package playback

import (
	"slices"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// Session binds an engine to a media transport for one playback run.
// It is driven from a single update loop and is not safe for concurrent use.
type Session struct {
	engine    *Engine
	transport ports.MediaTransport

	last   domain.Timecode
	active []int
}

// NewSession creates a session reading time from transport
func NewSession(engine *Engine, transport ports.MediaTransport) *Session {
	return &Session{
		engine:    engine,
		transport: transport,
	}
}

// Engine returns the underlying engine
func (s *Session) Engine() *Engine {
	return s.engine
}

// Tick reads the transport clock and returns the active segments.
// Both forward playback and arbitrary jumps are handled; the result only
// depends on the current time.
func (s *Session) Tick() (active []domain.Segment, changed bool) {
	now := s.transport.CurrentTime()
	positions := s.engine.ActivePositions(now)

	changed = !slices.Equal(positions, s.active)
	s.last = now
	s.active = positions

	return s.engine.ActiveSegments(now), changed
}

// ActivePositions returns the document positions found active by the last Tick
func (s *Session) ActivePositions() []int {
	return append([]int(nil), s.active...)
}

// LastTime returns the clock reading of the last Tick
func (s *Session) LastTime() domain.Timecode {
	return s.last
}

// SeekTo moves the transport to the start of the segment with index
func (s *Session) SeekTo(index int) (domain.Timecode, error) {
	target, err := s.engine.Seek(index)
	if err != nil {
		return 0, err
	}
	s.transport.Seek(target)
	return target, nil
}
