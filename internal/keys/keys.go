package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	HalfPgUp key.Binding
	HalfPgDn key.Binding
	GotoTop  key.Binding
	GotoBot  key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Escape   key.Binding

	// Playback
	PlayPause key.Binding
	Next      key.Binding
	Prev      key.Binding
	Reset     key.Binding

	// Configuration
	NextAlgorithm key.Binding
	PrevAlgorithm key.Binding
	Grow          key.Binding
	Shrink        key.Binding
	Language      key.Binding
	ToggleMode    key.Binding
	Edit          key.Binding

	// Actions
	Quit key.Binding
	Yank key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default keybindings
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "scroll"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/k", "scroll"),
	),
	HalfPgUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u/C-d", "half page"),
	),
	HalfPgDn: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-u/C-d", "half page"),
	),
	GotoTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g/G", "top/bottom"),
	),
	GotoBot: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("g/G", "top/bottom"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next window"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev window"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	PlayPause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n/p", "next/prev step"),
	),
	Prev: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("n/p", "next/prev step"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	NextAlgorithm: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a/A", "cycle algorithm"),
	),
	PrevAlgorithm: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("a/A", "cycle algorithm"),
	),
	Grow: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "window size"),
	),
	Shrink: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("+/-", "window size"),
	),
	Language: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "cycle language"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "array/string"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit input"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy code"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// HelpBindings returns the keybindings to display in help, grouped by blank
// separators (zero bindings)
func HelpBindings() []key.Binding {
	return []key.Binding{
		DefaultKeyMap.PlayPause,
		DefaultKeyMap.Next,
		DefaultKeyMap.Reset,
		{},
		DefaultKeyMap.NextAlgorithm,
		DefaultKeyMap.Grow,
		DefaultKeyMap.Language,
		DefaultKeyMap.ToggleMode,
		DefaultKeyMap.Edit,
		{},
		DefaultKeyMap.Down,
		DefaultKeyMap.GotoTop,
		DefaultKeyMap.Tab,
		{},
		DefaultKeyMap.Yank,
		DefaultKeyMap.Help,
		DefaultKeyMap.Quit,
	}
}
