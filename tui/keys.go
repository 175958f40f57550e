package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search      key.Binding
	FocusList   key.Binding
	FocusInput  key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
	Cancel      key.Binding
	ForceQuit   key.Binding
	inputActive bool
}

func newKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		FocusList: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "results"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("tab", "/"),
			key.WithHelp("/", "edit query"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("q/esc", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp shows the bindings relevant to the focused pane
func (k keyMap) ShortHelp() []key.Binding {
	if k.inputActive {
		return []key.Binding{k.Search, k.FocusList, k.Cancel}
	}
	return []key.Binding{k.Up, k.Down, k.Toggle, k.FocusInput, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.FocusList, k.FocusInput},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Toggle, k.Quit},
	}
}
