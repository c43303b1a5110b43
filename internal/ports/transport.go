package ports

import "github.com/barrard/video-transcribe/internal/domain"

// MediaTransport is the playback surface driven by the synchronization engine
type MediaTransport interface {
	// CurrentTime reports the playback position
	CurrentTime() domain.Timecode

	// Seek moves the playback position
	Seek(to domain.Timecode)
}
