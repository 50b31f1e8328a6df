package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings shown in help
type keyMap struct {
	SwitchTab key.Binding
	Theme     key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Submit    key.Binding
	Clear     key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch screen")),
		Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle theme")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev language")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next language")),
		Up:        key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "focus up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "focus down")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+x", "delete"), key.WithHelp("ctrl+x", "clear player")),
		Reset:     key.NewBinding(key.WithKeys("r", "esc"), key.WithHelp("r", "reset")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchTab, k.Theme, k.Help, k.Quit},
		{k.Left, k.Right},
		{k.Up, k.Down, k.Submit, k.Clear},
		{k.Reset},
	}
}
