package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings. Text inputs own most printable keys, so
// the global actions sit on control chords.
type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Logout    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "prev field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Toggle:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "login/signup")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Logout:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
