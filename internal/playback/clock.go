package playback

import (
	"time"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// Clock is an in-process media transport advanced by elapsed wall time.
// The terminal player uses it in place of a video element.
type Clock struct {
	position domain.Timecode
	duration domain.Timecode
	paused   bool
}

// NewClock creates a clock stopped at zero. A zero duration means unbounded.
func NewClock(duration domain.Timecode) *Clock {
	return &Clock{duration: duration}
}

// CurrentTime implements ports.MediaTransport
func (c *Clock) CurrentTime() domain.Timecode {
	return c.position
}

// Seek implements ports.MediaTransport
func (c *Clock) Seek(to domain.Timecode) {
	c.position = c.clamp(to)
}

// Advance moves the clock forward by d unless paused
func (c *Clock) Advance(d time.Duration) {
	if c.paused || d <= 0 {
		return
	}
	c.position = c.clamp(c.position + domain.Timecode(d))
}

// TogglePause flips the paused state and reports the new state
func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether the clock is paused
func (c *Clock) Paused() bool {
	return c.paused
}

// Ended reports whether a bounded clock reached its duration
func (c *Clock) Ended() bool {
	return c.duration > 0 && c.position >= c.duration
}

func (c *Clock) clamp(t domain.Timecode) domain.Timecode {
	if t < 0 {
		return 0
	}
	if c.duration > 0 && t > c.duration {
		return c.duration
	}
	return t
}

// Duration returns the end of the last segment in doc, the natural length
// of a playback run when the media itself is not available.
func Duration(doc *domain.Document) domain.Timecode {
	var end domain.Timecode
	if doc == nil {
		return end
	}
	for _, seg := range doc.Segments {
		if seg.End > end {
			end = seg.End
		}
	}
	return end
}

var _ ports.MediaTransport = (*Clock)(nil)
