package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/barrard/video-transcribe/internal/domain"
)

func newJob(id, source string) domain.Job {
	return domain.Job{
		ID:        id,
		Source:    domain.MediaArtifact{StorageName: source},
		CreatedAt: time.Now(),
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(0)

	job, err := r.Create(newJob("job-1", "a.mp4"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.Status != domain.JobStatusPending {
		t.Fatalf("status = %s, want pending", job.Status)
	}

	if _, err := r.Transition("job-1", domain.JobStatusRunning, nil); err != nil {
		t.Fatalf("transition to running: %v", err)
	}

	done, err := r.Done("job-1")
	if err != nil {
		t.Fatalf("Done() error = %v", err)
	}
	select {
	case <-done:
		t.Fatal("done closed before terminal status")
	default:
	}

	job, err = r.Transition("job-1", domain.JobStatusSucceeded, func(j *domain.Job) {
		j.ResultPath = "processed/a.srt"
	})
	if err != nil {
		t.Fatalf("transition to succeeded: %v", err)
	}
	if job.ResultPath != "processed/a.srt" {
		t.Errorf("ResultPath = %q", job.ResultPath)
	}

	select {
	case <-done:
	default:
		t.Fatal("done should be closed after terminal status")
	}
	if _, ok := r.InFlight("a.mp4"); ok {
		t.Error("source should be released after completion")
	}
}

func TestRegistryRejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []domain.JobStatus
	}{
		{"pending to succeeded", []domain.JobStatus{domain.JobStatusSucceeded}},
		{"pending to pending", []domain.JobStatus{domain.JobStatusPending}},
		{"running twice", []domain.JobStatus{domain.JobStatusRunning, domain.JobStatusRunning}},
		{"succeeded is final", []domain.JobStatus{domain.JobStatusRunning, domain.JobStatusSucceeded, domain.JobStatusFailed}},
		{"failed is final", []domain.JobStatus{domain.JobStatusFailed, domain.JobStatusRunning}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(0)
			if _, err := r.Create(newJob("job-1", "a.mp4")); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			var err error
			for _, status := range tt.path {
				if _, err = r.Transition("job-1", status, nil); err != nil {
					break
				}
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestRegistryRejectsSecondJobForSource(t *testing.T) {
	r := NewRegistry(0)
	if _, err := r.Create(newJob("job-1", "a.mp4")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := r.Create(newJob("job-2", "a.mp4"))
	if !errors.Is(err, domain.ErrJobInFlight) {
		t.Fatalf("error = %v, want ErrJobInFlight", err)
	}
	var inFlight *domain.InFlightError
	if !errors.As(err, &inFlight) || inFlight.JobID != "job-1" {
		t.Fatalf("error = %#v, want InFlightError naming job-1", err)
	}

	// a different source is independent
	if _, err := r.Create(newJob("job-3", "b.mp4")); err != nil {
		t.Fatalf("Create(b.mp4) error = %v", err)
	}
	if r.Active() != 2 {
		t.Errorf("Active() = %d, want 2", r.Active())
	}

	// once finished, the source accepts a fresh job
	if _, err := r.Transition("job-1", domain.JobStatusFailed, nil); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := r.Create(newJob("job-4", "a.mp4")); err != nil {
		t.Fatalf("Create() after completion error = %v", err)
	}
}

func TestRegistryUnknownJob(t *testing.T) {
	r := NewRegistry(0)

	if _, err := r.Get("missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Get() error = %v, want ErrJobNotFound", err)
	}
	if _, err := r.Done("missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Done() error = %v, want ErrJobNotFound", err)
	}
	if _, err := r.Transition("missing", domain.JobStatusRunning, nil); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Transition() error = %v, want ErrJobNotFound", err)
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry(0)
	base := time.Now()

	second := newJob("job-b", "b.mp4")
	second.CreatedAt = base.Add(time.Second)
	first := newJob("job-a", "a.mp4")
	first.CreatedAt = base

	r.Create(second)
	r.Create(first)

	jobs := r.List()
	if len(jobs) != 2 || jobs[0].ID != "job-a" || jobs[1].ID != "job-b" {
		t.Fatalf("List() = %+v", jobs)
	}
}

func TestRegistryEvictsOldestFinished(t *testing.T) {
	r := NewRegistry(2)
	finish := func(id, source string) {
		t.Helper()
		if _, err := r.Create(newJob(id, source)); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
		if _, err := r.Transition(id, domain.JobStatusFailed, nil); err != nil {
			t.Fatalf("Transition(%s) error = %v", id, err)
		}
	}

	if _, err := r.Create(newJob("running", "r.mp4")); err != nil {
		t.Fatal(err)
	}
	finish("job-1", "a.mp4")
	finish("job-2", "b.mp4")
	finish("job-3", "c.mp4")

	if _, err := r.Get("job-1"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("Get(job-1) error = %v, want evicted", err)
	}
	for _, id := range []string{"running", "job-2", "job-3"} {
		if _, err := r.Get(id); err != nil {
			t.Errorf("Get(%s) error = %v", id, err)
		}
	}
	if got := len(r.List()); got != 3 {
		t.Errorf("List() = %d jobs, want 3", got)
	}
}
