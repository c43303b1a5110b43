package domain

import (
	"errors"
	"fmt"
)

var (
	// Subtitle parsing errors
	ErrMalformedTimecode = errors.New("malformed timecode")
	ErrEmptyDocument     = errors.New("empty subtitle document")
	ErrMalformedBlock    = errors.New("malformed subtitle block")

	// Transcription errors
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrJobInFlight         = errors.New("transcription already in flight for source")
	ErrJobNotFound         = errors.New("job not found")

	// Catalog and upload errors
	ErrCatalogUnavailable   = errors.New("catalog unavailable")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNoUpload             = errors.New("no file uploaded")

	// Playback errors
	ErrSubtitlesNotReady = errors.New("subtitles not ready")
	ErrSegmentNotFound   = errors.New("segment not found")
)

// TimecodeError describes why a timecode could not be parsed
type TimecodeError struct {
	Input  string
	Reason string
}

func (e *TimecodeError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedTimecode, e.Input, e.Reason)
}

func (e *TimecodeError) Unwrap() error {
	return ErrMalformedTimecode
}

// BlockError reports a malformed block by its 1-based position in the document
type BlockError struct {
	Block  int
	Reason string
	Err    error
}

func (e *BlockError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %d: %s: %v", ErrMalformedBlock, e.Block, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %d: %s", ErrMalformedBlock, e.Block, e.Reason)
}

// Is matches ErrMalformedBlock so callers need not know the concrete type
func (e *BlockError) Is(target error) bool {
	return target == ErrMalformedBlock
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// InFlightError names the job already running for a source artifact
type InFlightError struct {
	StorageName string
	JobID       string
}

func (e *InFlightError) Error() string {
	return fmt.Sprintf("%s %s (job %s)", ErrJobInFlight, e.StorageName, e.JobID)
}

func (e *InFlightError) Unwrap() error {
	return ErrJobInFlight
}

// EngineError describes a failed run of the transcription engine.
// ExitCode is -1 when the process never ran.
type EngineError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *EngineError) Error() string {
	msg := fmt.Sprintf("%s: exit code %d", ErrTranscriptionFailed, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrTranscriptionFailed
func (e *EngineError) Is(target error) bool {
	return target == ErrTranscriptionFailed
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
