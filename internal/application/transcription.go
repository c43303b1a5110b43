package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/jobs"
	"github.com/barrard/video-transcribe/internal/ports"
)

// ErrServiceClosed is returned by Submit after Shutdown has begun
var ErrServiceClosed = errors.New("transcription service is shutting down")

const (
	DefaultMaxConcurrent = 2
	DefaultJobTimeout    = 30 * time.Minute
	DefaultStderrLimit   = 2048
)

// TranscriptionOptions configures the job runner
type TranscriptionOptions struct {
	MaxConcurrent int
	Timeout       time.Duration
	StderrLimit   int // bytes of stderr kept in a failure reason
	JobHistory    int // finished jobs kept for status queries
}

// TranscriptionService runs the transcription engine for uploaded media.
// Submit returns immediately; jobs run on a bounded pool of goroutines.
type TranscriptionService struct {
	store    ports.MediaStore
	engine   ports.Transcriber
	registry *jobs.Registry
	events   *jobs.EventBus
	logger   *slog.Logger
	opts     TranscriptionOptions

	sem    chan struct{}
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool

	newID func() string
	now   func() time.Time
}

// NewTranscriptionService creates a job runner. Zero options take defaults.
func NewTranscriptionService(
	store ports.MediaStore,
	engine ports.Transcriber,
	events *jobs.EventBus,
	logger *slog.Logger,
	opts TranscriptionOptions,
) *TranscriptionService {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultJobTimeout
	}
	if opts.StderrLimit <= 0 {
		opts.StderrLimit = DefaultStderrLimit
	}
	if events == nil {
		events = jobs.NewEventBus(0)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &TranscriptionService{
		store:    store,
		engine:   engine,
		registry: jobs.NewRegistry(opts.JobHistory),
		events:   events,
		logger:   logger,
		opts:     opts,
		sem:      make(chan struct{}, opts.MaxConcurrent),
		ctx:      ctx,
		cancel:   cancel,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Events returns the bus every job transition is published to
func (s *TranscriptionService) Events() *jobs.EventBus {
	return s.events
}

// Submit creates a pending job for source and schedules it.
// A source with a job already in flight is rejected with *domain.InFlightError.
func (s *TranscriptionService) Submit(ctx context.Context, source domain.MediaArtifact) (domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Job{}, ErrServiceClosed
	}

	job, err := s.registry.Create(domain.Job{
		ID:        s.newID(),
		Source:    source,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.Job{}, err
	}

	s.publishStatus(job, "queued")
	s.logger.Info("job queued", "job", job.ID, "source", source.StorageName)

	s.wg.Add(1)
	go s.run(job)

	return job, nil
}

// Get returns a snapshot of one job
func (s *TranscriptionService) Get(id string) (domain.Job, error) {
	return s.registry.Get(id)
}

// List returns every job of the process, oldest first
func (s *TranscriptionService) List() []domain.Job {
	return s.registry.List()
}

// InFlight returns the running or pending job for a source, if any
func (s *TranscriptionService) InFlight(storageName string) (domain.Job, bool) {
	id, ok := s.registry.InFlight(storageName)
	if !ok {
		return domain.Job{}, false
	}
	job, err := s.registry.Get(id)
	return job, err == nil
}

// Wait blocks until the job is terminal or ctx is done. On ctx expiry the
// latest snapshot is returned with ctx's error; the job keeps running.
func (s *TranscriptionService) Wait(ctx context.Context, id string) (domain.Job, error) {
	done, err := s.registry.Done(id)
	if err != nil {
		return domain.Job{}, err
	}

	select {
	case <-done:
		return s.registry.Get(id)
	case <-ctx.Done():
		job, _ := s.registry.Get(id)
		return job, ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for scheduled ones to finish.
// If ctx expires first, running engines are cancelled.
func (s *TranscriptionService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-drained
		return ctx.Err()
	}
}

func (s *TranscriptionService) run(job domain.Job) {
	defer s.wg.Done()

	select {
	case s.sem <- struct{}{}:
	case <-s.ctx.Done():
		s.fail(job, -1, "", "launch: service stopped before the job started")
		return
	}
	defer func() { <-s.sem }()

	id, name := job.ID, job.Source.StorageName
	exists, err := s.store.Exists(s.ctx, name)
	if err != nil || !exists {
		reason := fmt.Sprintf("launch: source media %s not found", name)
		if err != nil {
			reason = fmt.Sprintf("launch: cannot access source media %s: %v", name, err)
		}
		s.fail(job, -1, "", reason)
		return
	}

	job, err = s.registry.Transition(job.ID, domain.JobStatusRunning, func(j *domain.Job) {
		j.StartedAt = s.now().UTC()
	})
	if err != nil {
		s.logger.Error("job transition", "job", id, "error", err)
		return
	}
	s.publishStatus(job, "engine started")

	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	req := ports.TranscribeRequest{
		InputPath:  s.store.MediaPath(name),
		OutputPath: s.store.SubtitlePath(name),
	}
	s.logger.Info("running engine", "job", job.ID, "command", s.engine.Name(), "input", req.InputPath, "output", req.OutputPath)

	result, err := s.engine.Transcribe(ctx, req)
	if result != nil && result.Stderr != "" {
		s.logger.Debug("engine stderr", "job", job.ID, "stderr", result.Stderr)
	}

	if err != nil {
		exitCode, stderr := -1, ""
		var engineErr *domain.EngineError
		if errors.As(err, &engineErr) {
			exitCode, stderr = engineErr.ExitCode, engineErr.Stderr
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.opts.Timeout, err)
		}
		s.fail(job, exitCode, stderr, err.Error())
		return
	}

	job, err = s.registry.Transition(job.ID, domain.JobStatusSucceeded, func(j *domain.Job) {
		j.ResultPath = req.OutputPath
		j.FinishedAt = s.now().UTC()
	})
	if err != nil {
		s.logger.Error("job transition", "job", id, "error", err)
		return
	}

	s.events.Publish(jobs.Event{
		JobID:      job.ID,
		Source:     name,
		Type:       jobs.EventTypeResult,
		Status:     job.Status,
		Message:    "transcript ready",
		ResultPath: job.ResultPath,
	})
	s.logger.Info("job succeeded", "job", job.ID, "source", name, "duration", job.Duration())
}

// fail moves a job to Failed, keeping a bounded tail of stderr in the reason
func (s *TranscriptionService) fail(job domain.Job, exitCode int, stderr, reason string) {
	stderr = truncateTail(strings.TrimSpace(stderr), s.opts.StderrLimit)
	if stderr != "" {
		reason = fmt.Sprintf("%s: %s", reason, stderr)
	}

	id := job.ID
	job, err := s.registry.Transition(id, domain.JobStatusFailed, func(j *domain.Job) {
		j.ExitCode = exitCode
		j.FailureReason = reason
		j.FinishedAt = s.now().UTC()
	})
	if err != nil {
		s.logger.Error("job transition", "job", id, "error", err)
		return
	}

	s.events.Publish(jobs.Event{
		JobID:    job.ID,
		Source:   job.Source.StorageName,
		Type:     jobs.EventTypeError,
		Status:   job.Status,
		Message:  reason,
		ExitCode: exitCode,
		Stderr:   stderr,
	})
	s.logger.Warn("job failed", "job", job.ID, "source", job.Source.StorageName, "exit_code", exitCode, "reason", reason)
}

func (s *TranscriptionService) publishStatus(job domain.Job, message string) {
	s.events.Publish(jobs.Event{
		JobID:   job.ID,
		Source:  job.Source.StorageName,
		Type:    jobs.EventTypeStatus,
		Status:  job.Status,
		Message: message,
	})
}

// truncateTail keeps at most the last limit bytes of s, where engines print
// the actual error. The cut never splits a rune.
func truncateTail(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := len(s) - limit
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return "..." + s[cut:]
}
