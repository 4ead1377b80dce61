package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down         key.Binding
	Choose, Quit     key.Binding
	SwitchMode       key.Binding
	NextAuthor       key.Binding
	HalfUp, HalfDown key.Binding
	PageUp, PageDown key.Binding
}

func binding(help, desc string, names ...string) key.Binding {
	return key.NewBinding(key.WithKeys(names...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Up:         binding("up/C-k", "previous result", "up", "ctrl+k"),
	Down:       binding("dn/C-j", "next result", "down", "ctrl+j"),
	Choose:     binding("enter", "copy message", "enter"),
	Quit:       binding("esc", "quit", "esc", "ctrl+c"),
	SwitchMode: binding("tab", "talks/messages", "tab"),
	NextAuthor: binding("C-a", "cycle author", "ctrl+a"),
	HalfUp:     binding("C-u", "scroll talk up", "ctrl+u"),
	HalfDown:   binding("C-d", "scroll talk down", "ctrl+d"),
	PageUp:     binding("pgup", "talk page up", "pgup"),
	PageDown:   binding("pgdn", "talk page down", "pgdown"),
}
