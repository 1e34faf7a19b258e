package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	Pause     key.Binding
	Reset     key.Binding
	Delete    key.Binding
	Up        key.Binding
	Down      key.Binding
	Find      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding // works inside modals too
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Pause:     key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Pause, k.Reset, k.Delete, k.Find, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Add, k.Pause, k.Reset, k.Delete}, {k.Up, k.Down, k.Find, k.Quit}}
}

type modalKeyMap struct {
	keyMap
	fields bool
}

func (k modalKeyMap) ShortHelp() []key.Binding {
	if k.fields {
		return []key.Binding{k.NextField, k.Submit, k.Cancel, k.ForceQuit}
	}
	return []key.Binding{k.Submit, k.Cancel, k.ForceQuit}
}

func (k modalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
