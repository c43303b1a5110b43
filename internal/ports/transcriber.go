package ports

import (
	"context"
	"time"
)

// TranscribeRequest names the media to transcribe and where the subtitle artifact goes
type TranscribeRequest struct {
	InputPath  string
	OutputPath string
}

// TranscribeResult is the command log of one engine run
type TranscribeResult struct {
	Command  string
	Args     []string
	ExitCode int // -1 when the process never ran
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Transcriber runs the external speech-to-text engine
type Transcriber interface {
	// Transcribe runs the engine once. A non-nil error is a *domain.EngineError;
	// the result is returned in both cases so callers can log the run.
	Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error)

	// Name returns the configured engine command
	Name() string

	// IsAvailable checks if the engine command can be found
	IsAvailable() bool

	// BinaryPath returns the resolved engine binary, or empty if not found
	BinaryPath() string
}
