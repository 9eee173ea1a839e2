// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// TourKeyMap defines the keys a running tour consumes. Everything else passes
// through to the screen underneath.
type TourKeyMap struct {
	Next key.Binding
	Back key.Binding
	Skip key.Binding
}

// DefaultTourKeyMap returns the default tour keybindings.
func DefaultTourKeyMap() TourKeyMap {
	return TourKeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "enter"),
			key.WithHelp("→/enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "back"),
		),
		Skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip tour"),
		),
	}
}

// Matches reports whether msg is one of the tour keys.
func (k TourKeyMap) Matches(msg interface{ String() string }) bool {
	s := msg.String()
	for _, b := range []key.Binding{k.Next, k.Back, k.Skip} {
		for _, bk := range b.Keys() {
			if bk == s {
				return true
			}
		}
	}
	return false
}

// ShortHelp returns keybindings for the short help view.
func (k TourKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Next, k.Skip}
}

// FullHelp returns keybindings for the full help view.
func (k TourKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Next, k.Skip}}
}

// AppKeyMap defines the keybindings for the home screen.
type AppKeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Focus key.Binding

	// Actions
	Replay  key.Binding
	Upgrade key.Binding

	// General
	Help key.Binding
	Quit key.Binding

	// Logs toggles the debug log overlay. Only bound with --debug.
	Logs key.Binding
}

// DefaultAppKeyMap returns the default home screen keybindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		Replay: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "replay tour"),
		),
		Upgrade: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upgrade tour"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug logs"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Replay, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus}, // Navigation
		{k.Replay, k.Upgrade},   // Tours
		{k.Help, k.Quit},        // General
	}
}
