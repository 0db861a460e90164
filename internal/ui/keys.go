package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	NextPanel key.Binding
	Add       key.Binding
	Toggle    key.Binding
	Marker    key.Binding
	AddMarker key.Binding
	Delete    key.Binding
	Assign    key.Binding
	Unassign  key.Binding
	Move      key.Binding
	Rename    key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Cancel    key.Binding
	Submit    key.Binding
}

// ShortHelp returns key bindings to show in the mini help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.AddMarker, k.Delete, k.Assign, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.NextPanel},
		{k.Add, k.Rename, k.Move, k.Delete},
		{k.Toggle, k.Marker, k.AddMarker},
		{k.Assign, k.Unassign, k.Reload, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev panel"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle panels"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle first marker"),
		),
		Marker: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "toggle marker"),
		),
		AddMarker: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add marker"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Assign: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m 1-7", "plan on day"),
		),
		Unassign: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unplan"),
		),
		Move: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c 1-4", "change quadrant"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit text"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
	}
}
