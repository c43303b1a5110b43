// Package jobs holds transcription job records, their state machine and
// the event feed describing every transition.
package jobs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/barrard/video-transcribe/internal/domain"
)

// ErrInvalidTransition is returned when a job would leave the
// pending -> running -> succeeded|failed path
var ErrInvalidTransition = errors.New("invalid job transition")

// DefaultJobHistory bounds how many finished jobs stay queryable when no size is given
const DefaultJobHistory = 200

// Registry tracks the jobs of the process and which sources have one in flight.
// Jobs in flight are always kept; finished ones are evicted oldest first
// once more than maxFinished have accumulated.
// All methods return copies; records are only changed through Transition.
type Registry struct {
	mu          sync.RWMutex
	jobs        map[string]*entry
	inFlight    map[string]string // storage name -> job id
	finished    []string          // terminal job ids, in completion order
	maxFinished int
}

type entry struct {
	job  domain.Job
	done chan struct{}
}

// NewRegistry creates an empty registry retaining up to maxFinished terminal jobs
func NewRegistry(maxFinished int) *Registry {
	if maxFinished <= 0 {
		maxFinished = DefaultJobHistory
	}
	return &Registry{
		jobs:        make(map[string]*entry),
		inFlight:    make(map[string]string),
		maxFinished: maxFinished,
	}
}

// Create records a pending job and claims its source.
// A source already claimed by a non-terminal job is rejected with *domain.InFlightError.
func (r *Registry) Create(job domain.Job) (domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.inFlight[job.Source.StorageName]; ok {
		return domain.Job{}, &domain.InFlightError{StorageName: job.Source.StorageName, JobID: existing}
	}
	if _, ok := r.jobs[job.ID]; ok {
		return domain.Job{}, fmt.Errorf("job %s already exists", job.ID)
	}

	job.Status = domain.JobStatusPending
	r.jobs[job.ID] = &entry{job: job, done: make(chan struct{})}
	r.inFlight[job.Source.StorageName] = job.ID
	return job, nil
}

// Transition moves a job to status, applying update to the record first.
// Reaching a terminal status releases the source and closes the job's done channel.
func (r *Registry) Transition(id string, status domain.JobStatus, update func(*domain.Job)) (domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return domain.Job{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	if !isValidTransition(e.job.Status, status) {
		return domain.Job{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.job.Status, status)
	}

	if update != nil {
		update(&e.job)
	}
	e.job.Status = status

	if status.IsTerminal() {
		delete(r.inFlight, e.job.Source.StorageName)
		close(e.done)
		r.retire(id)
	}
	return e.job, nil
}

// retire records a finished job and evicts the oldest beyond the limit.
// Callers hold the write lock.
func (r *Registry) retire(id string) {
	r.finished = append(r.finished, id)
	for len(r.finished) > r.maxFinished {
		delete(r.jobs, r.finished[0])
		r.finished = r.finished[1:]
	}
}

// Get returns a snapshot of one job
func (r *Registry) Get(id string) (domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[id]
	if !ok {
		return domain.Job{}, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	return e.job, nil
}

// Done returns a channel closed once the job reaches a terminal status
func (r *Registry) Done(id string) (<-chan struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, id)
	}
	return e.done, nil
}

// InFlight returns the id of the non-terminal job for a source, if any
func (r *Registry) InFlight(storageName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.inFlight[storageName]
	return id, ok
}

// List returns every job, oldest first
func (r *Registry) List() []domain.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Job, 0, len(r.jobs))
	for _, e := range r.jobs {
		out = append(out, e.job)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Active counts jobs that have not reached a terminal status
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.inFlight)
}

// isValidTransition enforces the job state machine edges
func isValidTransition(from, to domain.JobStatus) bool {
	switch from {
	case domain.JobStatusPending:
		return to == domain.JobStatusRunning || to == domain.JobStatusFailed
	case domain.JobStatusRunning:
		return to == domain.JobStatusSucceeded || to == domain.JobStatusFailed
	default:
		return false
	}
}
