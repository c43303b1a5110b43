package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/barrard/video-transcribe/internal/domain"
	"github.com/barrard/video-transcribe/internal/playback"
)

const (
	tickInterval = 100 * time.Millisecond
	skipStep     = 5 * time.Second
	textWidth    = 60
)

var (
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// PlayerModel plays a transcript against an in-process clock,
// highlighting the active segments as time passes.
type PlayerModel struct {
	title    string
	clock    *playback.Clock
	session  *playback.Session
	segments []domain.Segment
	duration domain.Timecode

	keys playerKeys
	help help.Model

	active []int
	cursor int
	follow bool
	last   time.Time
	height int
	err    string
}

// NewPlayerModel creates a player for doc with the clock at zero
func NewPlayerModel(title string, doc *domain.Document, paused bool) PlayerModel {
	engine := playback.NewEngine(doc)
	duration := playback.Duration(doc)
	clock := playback.NewClock(duration)
	if paused {
		clock.TogglePause()
	}

	m := PlayerModel{
		title:    title,
		clock:    clock,
		session:  playback.NewSession(engine, clock),
		segments: engine.Segments(),
		duration: duration,
		keys:     defaultPlayerKeys(),
		help:     help.New(),
		follow:   true,
		height:   20,
	}
	m.refresh()
	return m
}

func (m PlayerModel) Init() tea.Cmd {
	return tick()
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.clock.Advance(now.Sub(m.last))
		}
		m.last = now
		m.refresh()
		return m, tick()

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.clock.TogglePause()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.follow = false
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.segments)-1 {
				m.cursor++
				m.follow = false
			}
		case key.Matches(msg, m.keys.Seek):
			if len(m.segments) > 0 {
				if _, err := m.session.SeekTo(m.segments[m.cursor].Index); err != nil {
					m.err = err.Error()
				} else {
					m.err = ""
				}
				m.follow = true
				m.refresh()
			}
		case key.Matches(msg, m.keys.Back):
			m.jump(m.clock.CurrentTime() - domain.Timecode(skipStep))
		case key.Matches(msg, m.keys.Forward):
			m.jump(m.clock.CurrentTime() + domain.Timecode(skipStep))
		case key.Matches(msg, m.keys.Start):
			m.jump(0)
		}
	}
	return m, nil
}

func (m *PlayerModel) jump(to domain.Timecode) {
	m.clock.Seek(to)
	m.follow = true
	m.refresh()
}

// refresh re-reads the clock and moves the cursor to the first active
// segment while following
func (m *PlayerModel) refresh() {
	m.session.Tick()
	m.active = m.session.ActivePositions()
	if m.follow && len(m.active) > 0 {
		m.cursor = m.active[0]
	}
}

func (m PlayerModel) View() string {
	var sb strings.Builder

	state := "▶"
	if m.clock.Paused() {
		state = "⏸"
	} else if m.clock.Ended() {
		state = "■"
	}
	sb.WriteString(headerStyle.Render(m.title))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s / %s %s\n\n",
		state,
		m.clock.CurrentTime().Format(),
		m.duration.Format(),
		renderProgressBar(int64(m.clock.CurrentTime()), int64(m.duration), 30))

	if len(m.segments) == 0 {
		sb.WriteString(dimStyle.Render("(no segments)"))
		sb.WriteString("\n")
	}

	from, to := m.window()
	for i := from; i < to; i++ {
		line := FormatSegmentLine(m.segments[i], textWidth)
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		if slices.Contains(m.active, i) {
			line = activeStyle.Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		sb.WriteString(marker + line + "\n")
	}

	if m.err != "" {
		sb.WriteString("\n" + failStyle.Render(m.err) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")
	return sb.String()
}

// window returns the range of segment rows that fit on screen around the cursor
func (m PlayerModel) window() (int, int) {
	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	if len(m.segments) <= rows {
		return 0, len(m.segments)
	}
	from := m.cursor - rows/2
	from = max(0, min(from, len(m.segments)-rows))
	return from, from + rows
}

// Position returns the clock reading
func (m PlayerModel) Position() domain.Timecode {
	return m.clock.CurrentTime()
}

// Active returns the document positions of the active segments
func (m PlayerModel) Active() []int {
	return append([]int(nil), m.active...)
}

// Cursor returns the highlighted row
func (m PlayerModel) Cursor() int {
	return m.cursor
}

// RunPlayer plays doc in the terminal until the user quits
func RunPlayer(title string, doc *domain.Document) error {
	p := tea.NewProgram(NewPlayerModel(title, doc, false), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
