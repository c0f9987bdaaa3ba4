// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Enter  key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Screens
	Search  key.Binding
	Stats   key.Binding
	Authors key.Binding

	// Filters
	Today key.Binding
	Range key.Binding

	// Confirmation
	Confirm key.Binding
	Cancel  key.Binding

	// General
	Help            key.Binding
	Escape          key.Binding
	Quit            key.Binding
	ToggleStatusBar key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		// Actions
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view entry"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new entry"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete entry"),
		),

		// Screens
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "statistics"),
		),
		Authors: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "manage authors"),
		),

		// Filters
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today's entries"),
		),
		Range: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "date range"),
		),

		// Confirmation
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleStatusBar: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},                          // Navigation
		{k.New, k.Edit, k.Delete},                        // Actions
		{k.Search, k.Stats, k.Authors, k.Today, k.Range}, // Screens and filters
		{k.Help, k.ToggleStatusBar, k.Escape, k.Quit},    // General
	}
}
