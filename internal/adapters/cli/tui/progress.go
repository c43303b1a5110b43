package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the state of a progress step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepError
)

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ProgressStep represents a single step in the progress
type ProgressStep struct {
	Name    string
	Status  StepStatus
	Total   int64 // bytes, only for copy steps
	Current int64
	Error   string
}

// ProgressDisplay manages multi-step progress output
type ProgressDisplay struct {
	out        io.Writer
	steps      []ProgressStep
	spinnerIdx int
	quiet      bool
	mu         sync.Mutex
	lastRender time.Time
	rendered   bool
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewProgressDisplay creates a progress display writing to stdout
func NewProgressDisplay(steps []string, quiet bool) *ProgressDisplay {
	return NewProgressDisplayTo(os.Stdout, steps, quiet)
}

// NewProgressDisplayTo creates a progress display writing to out
func NewProgressDisplayTo(out io.Writer, steps []string, quiet bool) *ProgressDisplay {
	pd := &ProgressDisplay{
		out:   out,
		steps: make([]ProgressStep, len(steps)),
		quiet: quiet,
	}
	for i, name := range steps {
		pd.steps[i] = ProgressStep{Name: name, Status: StepPending}
	}
	return pd
}

// StartStep marks a step as running
func (p *ProgressDisplay) StartStep(index int) {
	p.set(index, func(s *ProgressStep) { s.Status = StepRunning })
}

// CompleteStep marks a step as complete
func (p *ProgressDisplay) CompleteStep(index int) {
	p.set(index, func(s *ProgressStep) { s.Status = StepComplete })
}

// FailStep marks a step as failed
func (p *ProgressDisplay) FailStep(index int, err string) {
	p.set(index, func(s *ProgressStep) {
		s.Status = StepError
		s.Error = err
	})
}

func (p *ProgressDisplay) set(index int, apply func(*ProgressStep)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= 0 && index < len(p.steps) {
		apply(&p.steps[index])
		p.render()
	}
}

// UpdateProgress updates byte progress for a step
func (p *ProgressDisplay) UpdateProgress(index int, current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= 0 && index < len(p.steps) {
		p.steps[index].Current = current
		p.steps[index].Total = total
		// Throttle renders to avoid flickering
		if time.Since(p.lastRender) > 100*time.Millisecond {
			p.render()
		}
	}
}

// Steps returns a snapshot of the steps
func (p *ProgressDisplay) Steps() []ProgressStep {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ProgressStep(nil), p.steps...)
}

// Tick advances the spinner animation
func (p *ProgressDisplay) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerFrames)
	p.render()
}

func (p *ProgressDisplay) render() {
	if p.quiet {
		return
	}

	p.lastRender = time.Now()

	// Move up over the previous frame and clear it
	if p.rendered {
		fmt.Fprintf(p.out, "\033[%dA", len(p.steps))
		fmt.Fprint(p.out, "\033[J")
	}

	total := len(p.steps)
	for i, step := range p.steps {
		fmt.Fprintf(p.out, "[%d/%d] %s... %s\n", i+1, total, step.Name, p.stepStatus(step))
	}

	p.rendered = true
}

func (p *ProgressDisplay) stepStatus(step ProgressStep) string {
	switch step.Status {
	case StepRunning:
		if step.Total > 0 {
			return fmt.Sprintf("%s %s / %s",
				renderProgressBar(step.Current, step.Total, 20),
				FormatSize(step.Current),
				FormatSize(step.Total))
		}
		return spinnerFrames[p.spinnerIdx]
	case StepComplete:
		return doneStyle.Render("✓")
	case StepError:
		return failStyle.Render("✗") + " " + detailStyle.Render(step.Error)
	default:
		return " "
	}
}

// Complete prints the final success message
func (p *ProgressDisplay) Complete(outputs [][2]string) {
	if p.quiet {
		return
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, doneStyle.Render("✓ Complete!"))
	for _, kv := range outputs {
		fmt.Fprintf(p.out, "  %s: %s\n", kv[0], kv[1])
	}
}

// StartSpinner starts a goroutine that ticks the spinner until done is closed
func (p *ProgressDisplay) StartSpinner() chan struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()
	return done
}

// renderProgressBar creates a text progress bar like [=====>    ]
func renderProgressBar(current, total int64, width int) string {
	if total <= 0 || current <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}
	if current >= total {
		return "[" + strings.Repeat("=", width) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width-1 {
		filled = width - 1
	}
	return "[" + strings.Repeat("=", filled) + ">" + strings.Repeat(" ", width-filled-1) + "]"
}
