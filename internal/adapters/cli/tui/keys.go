package tui

import "github.com/charmbracelet/bubbles/key"

// playerKeys are the player's bindings; they also feed the help line
type playerKeys struct {
	Pause   key.Binding
	Up      key.Binding
	Down    key.Binding
	Seek    key.Binding
	Back    key.Binding
	Forward key.Binding
	Start   key.Binding
	Quit    key.Binding
}

func defaultPlayerKeys() playerKeys {
	return playerKeys{
		Pause:   key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Seek:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "seek")),
		Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-5s")),
		Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+5s")),
		Start:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "start")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k playerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Up, k.Down, k.Seek, k.Back, k.Forward, k.Start, k.Quit}
}

// FullHelp implements help.KeyMap
func (k playerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Seek, k.Start},
		{k.Up, k.Down},
		{k.Back, k.Forward},
		{k.Quit},
	}
}

// menuKeys drive the picker. Printable keys go to the filter, so
// navigation stays off the letter keys.
type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Clear:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("type", "filter")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap
func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap
func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
