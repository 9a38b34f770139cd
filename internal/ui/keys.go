package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts for the application.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Tab   key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding

	Open        key.Binding
	OpenMany    key.Binding
	CheckUpdate key.Binding
	Copy        key.Binding
	Collage     key.Binding
	SaveFormat  key.Binding
	ClearRecent key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "Move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑↓", "Move"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←→", "Format"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←→", "Format"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥", "Variant"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "Choose"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open"),
		),
		OpenMany: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Replace batch"),
		),
		CheckUpdate: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "Check updates"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy"),
		),
		Collage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Collage"),
		),
		SaveFormat: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save format"),
		),
		ClearRecent: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Clear recent"),
		),
	}
}
