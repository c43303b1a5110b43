// Package engine runs the external speech-to-text command that turns a media
// file into a subtitle artifact.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/ports"
)

// Default command line, matching the stable-ts CLI
const DefaultCommand = "stable-ts"

// DefaultArgs writes an SRT next to the other processed artifacts
var DefaultArgs = []string{"{input}", "-o", "{output}"}

// commandResult is the captured outcome of one process execution
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for tests
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// DefaultWaitDelay bounds how long output pipes may outlive a cancelled engine
const DefaultWaitDelay = 3 * time.Second

// execRunner executes commands via os/exec. On cancellation the whole
// process group is killed, so helpers forked by the engine (ffmpeg) go too.
type execRunner struct {
	waitDelay time.Duration
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.waitDelay
	killProcessGroupOnCancel(cmd)

	err := cmd.Run()
	result := commandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}
	return result, nil
}

// Transcriber implements ports.Transcriber by running a configurable command
type Transcriber struct {
	command string
	args    []string
	binPath string

	runner   commandRunner
	stat     func(name string) (os.FileInfo, error)
	remove   func(name string) error
	mkdirAll func(path string, perm os.FileMode) error
	lookPath func(file string) (string, error)
}

// NewTranscriber creates an engine adapter. Empty command or args fall back
// to the stable-ts defaults.
func NewTranscriber(command string, args []string) *Transcriber {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand
	}
	if len(args) == 0 {
		args = DefaultArgs
	}
	return &Transcriber{
		command:  command,
		args:     append([]string(nil), args...),
		runner:   &execRunner{waitDelay: DefaultWaitDelay},
		stat:     os.Stat,
		remove:   os.Remove,
		mkdirAll: os.MkdirAll,
		lookPath: exec.LookPath,
	}
}

func (t *Transcriber) Name() string {
	return t.command
}

func (t *Transcriber) BinaryPath() string {
	if t.binPath != "" {
		return t.binPath
	}
	if path, err := t.lookPath(t.command); err == nil {
		t.binPath = path
	}
	return t.binPath
}

func (t *Transcriber) IsAvailable() bool {
	return t.BinaryPath() != ""
}

func (t *Transcriber) Transcribe(ctx context.Context, req ports.TranscribeRequest) (*ports.TranscribeResult, error) {
	args := ExpandArgs(t.args, req)
	result := &ports.TranscribeResult{
		Command:  t.command,
		Args:     args,
		ExitCode: -1,
	}

	if _, err := t.stat(req.InputPath); err != nil {
		return result, &domain.EngineError{
			ExitCode: -1,
			Err:      fmt.Errorf("launch: cannot access input media %s: %w", req.InputPath, err),
		}
	}
	if err := t.mkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return result, &domain.EngineError{
			ExitCode: -1,
			Err:      fmt.Errorf("launch: cannot create output directory: %w", err),
		}
	}

	// a leftover artifact from an earlier run must not pass for fresh output
	if err := t.remove(req.OutputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return result, &domain.EngineError{
			ExitCode: -1,
			Err:      fmt.Errorf("launch: cannot clear previous output: %w", err),
		}
	}

	started := time.Now()
	out, err := t.runner.Run(ctx, t.command, args...)
	result.Duration = time.Since(started)
	result.ExitCode = out.ExitCode
	result.Stdout = out.Stdout
	result.Stderr = out.Stderr

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		} else if out.ExitCode == -1 {
			err = fmt.Errorf("launch: %w", err)
		}
		return result, &domain.EngineError{ExitCode: out.ExitCode, Stderr: out.Stderr, Err: err}
	}

	if _, err := t.stat(req.OutputPath); err != nil {
		return result, &domain.EngineError{
			ExitCode: out.ExitCode,
			Stderr:   out.Stderr,
			Err:      fmt.Errorf("engine exited cleanly but produced no output at %s", req.OutputPath),
		}
	}

	return result, nil
}

// ExpandArgs substitutes {input}, {output}, {output_dir} and {base} in args
func ExpandArgs(args []string, req ports.TranscribeRequest) []string {
	replacer := strings.NewReplacer(
		"{input}", req.InputPath,
		"{output}", req.OutputPath,
		"{output_dir}", filepath.Dir(req.OutputPath),
		"{base}", domain.BaseName(filepath.Base(req.InputPath)),
	)

	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = replacer.Replace(arg)
	}
	return out
}

// Ensure Transcriber implements interface
var _ ports.Transcriber = (*Transcriber)(nil)
