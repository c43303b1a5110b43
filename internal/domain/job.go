package domain

import "time"

// JobStatus tracks one transcription attempt
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// Job is one execution of the transcription engine against one media artifact
type Job struct {
	ID            string        `json:"id"`
	Source        MediaArtifact `json:"source"`
	Status        JobStatus     `json:"status"`
	ResultPath    string        `json:"resultPath,omitempty"`
	FailureReason string        `json:"failureReason,omitempty"`
	ExitCode      int           `json:"exitCode,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	StartedAt     time.Time     `json:"startedAt,omitzero"`
	FinishedAt    time.Time     `json:"finishedAt,omitzero"`
}

// Duration returns how long the engine ran, or zero if the job has not finished
func (j *Job) Duration() time.Duration {
	if j.StartedAt.IsZero() || j.FinishedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
