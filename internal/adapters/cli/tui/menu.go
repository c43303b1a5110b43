package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// MenuOption is one pickable entry. Detail is shown dimmed after the label.
type MenuOption struct {
	Label  string
	Detail string
	Value  string
}

// MenuModel picks one option, narrowing the list as the user types
type MenuModel struct {
	title   string
	options []MenuOption
	visible []int // indexes into options matching filter
	filter  string
	cursor  int
	height  int

	keys     menuKeys
	help     help.Model
	selected string
}

// NewMenuModel creates a picker over options
func NewMenuModel(title string, options []MenuOption) MenuModel {
	m := MenuModel{
		title:   title,
		options: options,
		keys:    defaultMenuKeys(),
		help:    help.New(),
	}
	m.applyFilter()
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			if len(m.visible) > 0 {
				m.selected = m.options[m.visible[m.cursor]].Value
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Clear):
			if r := []rune(m.filter); len(r) > 0 {
				m.filter = string(r[:len(r)-1])
				m.applyFilter()
			}
		case msg.Type == tea.KeySpace:
			m.filter += " "
			m.applyFilter()
		case msg.Type == tea.KeyRunes:
			m.filter += string(msg.Runes)
			m.applyFilter()
		}
	}
	return m, nil
}

// move wraps around the visible options
func (m *MenuModel) move(delta int) {
	if n := len(m.visible); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
	}
}

func (m *MenuModel) applyFilter() {
	needle := strings.ToLower(m.filter)
	m.visible = m.visible[:0]
	for i, opt := range m.options {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = min(m.cursor, max(len(m.visible)-1, 0))
}

func (m MenuModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("? " + m.title))
	if m.filter != "" {
		sb.WriteString(dimStyle.Render("  filter: " + m.filter))
	}
	sb.WriteString("\n\n")

	if len(m.visible) == 0 {
		sb.WriteString(dimStyle.Render("  (no matches)"))
		sb.WriteString("\n")
	}

	from, to := m.window()
	for i := from; i < to; i++ {
		opt := m.options[m.visible[i]]
		cursor, style := "  ", normalStyle
		if i == m.cursor {
			cursor, style = "> ", selectedStyle
		}
		line := cursor + style.Render(opt.Label)
		if opt.Detail != "" {
			line += "  " + dimStyle.Render(opt.Detail)
		}
		sb.WriteString(line + "\n")
	}
	if hidden := len(m.visible) - (to - from); hidden > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", hidden)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + m.help.View(m.keys) + "\n")
	return sb.String()
}

// window returns the visible slice bounds keeping the cursor on screen
func (m MenuModel) window() (int, int) {
	rows := len(m.visible)
	if m.height > 0 {
		// title, blank, overflow line, blank, help
		rows = max(m.height-5, 1)
	}
	if rows >= len(m.visible) {
		return 0, len(m.visible)
	}
	from := max(m.cursor-rows/2, 0)
	from = min(from, len(m.visible)-rows)
	return from, from + rows
}

// Selected returns the chosen value, empty when cancelled
func (m MenuModel) Selected() string {
	return m.selected
}

// RunMenu shows the picker and returns the chosen value
func RunMenu(title string, options []MenuOption) (string, error) {
	finalModel, err := tea.NewProgram(NewMenuModel(title, options)).Run()
	if err != nil {
		return "", err
	}
	return finalModel.(MenuModel).Selected(), nil
}
